package presenter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSlides(t *testing.T) {
	tests := []struct {
		name      string
		document  string
		separator string
		want      []string
	}{
		{
			name:     "default separator",
			document: "# One\n\n---\n\n# Two\n",
			want:     []string{"# One", "# Two"},
		},
		{
			name:     "separator with surrounding blanks",
			document: "a\n  ---  \nb",
			want:     []string{"a", "b"},
		},
		{
			name:     "empty slides are dropped",
			document: "---\n\n---\na\n---\n   \n---",
			want:     []string{"a"},
		},
		{
			name:     "table rule is not a separator",
			document: "| A | B |\n|---|---|\n| 1 | 2 |",
			want:     []string{"| A | B |\n|---|---|\n| 1 | 2 |"},
		},
		{
			name:     "separator inside a line is ignored",
			document: "foo --- bar\n---\nbaz",
			want:     []string{"foo --- bar", "baz"},
		},
		{
			name:      "custom separator",
			document:  "a\n***\nb\n---\nc",
			separator: "***",
			want:      []string{"a", "b\n---\nc"},
		},
		{
			name:     "no slides",
			document: "  \n\n",
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSlides(tt.document, tt.separator)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitSlidesRejoin(t *testing.T) {
	document := "# Title\n\nintro\n---\n## Second\n- a\n- b\n---\n## Third\n| A | B |\n|---|---|\n| 1 | 2 |"

	slides := SplitSlides(document, DefaultSeparator)
	require.Len(t, slides, 3)

	rejoined := strings.Join(slides, "\n"+DefaultSeparator+"\n")
	assert.Equal(t, strings.TrimSpace(document), rejoined)
	assert.Equal(t, slides, SplitSlides(rejoined, DefaultSeparator))
}
