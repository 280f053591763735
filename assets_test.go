package presenter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitAssets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, EmitAssets(dir))

	for _, name := range []string{"presenter.css", "livereload.js"} {
		fi, err := os.Stat(filepath.Join(dir, "assets", name))
		require.NoError(t, err, name)
		assert.NotZero(t, fi.Size(), name)
	}
}
