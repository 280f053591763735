package presenter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// colorOf returns the colour of the first token with the given text.
func colorOf(t *testing.T, tokens []CodeToken, text string) RGB {
	t.Helper()
	for _, tok := range tokens {
		if tok.Text == text {
			return tok.Color
		}
	}
	require.Failf(t, "token not found", "no token %q in %v", text, tokens)
	return RGB{}
}

func joinTokens(tokens []CodeToken) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Text)
	}
	return b.String()
}

func TestTokenizeCodeUnsupportedLanguage(t *testing.T) {
	code := "some code\n  with lines"
	for _, lang := range []string{"", "klingon"} {
		tokens := TokenizeCode(code, lang)
		require.Len(t, tokens, 1)
		assert.Equal(t, code, tokens[0].Text)
		assert.Equal(t, RGB{212, 212, 212}, tokens[0].Color)
	}
}

func TestTokenizeCodePython(t *testing.T) {
	code := "def greet(name):\n    return \"hi\" # say hi\nx = None if 3.14 else 2"
	tokens := TokenizeCode(code, "python")

	assert.Equal(t, code, joinTokens(tokens))
	assert.Equal(t, ColorKeyword, colorOf(t, tokens, "def"))
	assert.Equal(t, ColorFunction, colorOf(t, tokens, "greet"))
	assert.Equal(t, ColorDefault, colorOf(t, tokens, "name"))
	assert.Equal(t, ColorKeyword, colorOf(t, tokens, "return"))
	assert.Equal(t, ColorString, colorOf(t, tokens, `"hi"`))
	assert.Equal(t, ColorComment, colorOf(t, tokens, "# say hi"))
	assert.Equal(t, ColorKeyword, colorOf(t, tokens, "None"))
	assert.Equal(t, ColorNumber, colorOf(t, tokens, "3.14"))
	assert.Equal(t, ColorNumber, colorOf(t, tokens, "2"))
}

func TestTokenizeCodeAliases(t *testing.T) {
	tokens := TokenizeCode("const x = 'a\\'b'; // done", "js")
	assert.Equal(t, ColorKeyword, colorOf(t, tokens, "const"))
	assert.Equal(t, ColorString, colorOf(t, tokens, `'a\'b'`))
	assert.Equal(t, ColorComment, colorOf(t, tokens, "// done"))

	tokens = TokenizeCode("export PATH # set", "shell")
	assert.Equal(t, ColorKeyword, colorOf(t, tokens, "export"))
	assert.Equal(t, ColorComment, colorOf(t, tokens, "# set"))
}

func TestTokenizeCodeLexerAliases(t *testing.T) {
	tokens := TokenizeCode("def f(): pass", "py")
	require.Greater(t, len(tokens), 1)
	assert.Equal(t, ColorKeyword, colorOf(t, tokens, "def"))
	assert.Equal(t, ColorFunction, colorOf(t, tokens, "f"))
	assert.Equal(t, ColorKeyword, colorOf(t, tokens, "pass"))
}

func TestTokenizeCodeSQL(t *testing.T) {
	tokens := TokenizeCode("SELECT id FROM users -- all of them", "sql")
	assert.Equal(t, ColorKeyword, colorOf(t, tokens, "SELECT"))
	assert.Equal(t, ColorKeyword, colorOf(t, tokens, "FROM"))
	assert.Equal(t, ColorDefault, colorOf(t, tokens, "users"))
	assert.Equal(t, ColorComment, colorOf(t, tokens, "-- all of them"))
}

func TestTokenizeCodeUnterminatedString(t *testing.T) {
	tokens := TokenizeCode(`fmt.Println("open`, "go")
	assert.Equal(t, ColorFunction, colorOf(t, tokens, "Println"))
	assert.Equal(t, ColorString, colorOf(t, tokens, `"open`))
}

func TestSyntaxColor(t *testing.T) {
	tests := []struct {
		token, language string
		want            RGB
	}{
		{`"text"`, "python", ColorString},
		{`'c'`, "", ColorString},
		{"# note", "python", ColorComment},
		{"// note", "go", ColorComment},
		{"/* note", "sql", ColorComment},
		{"42", "go", ColorNumber},
		{"-1.5", "", ColorNumber},
		{"1.2.3", "go", ColorDefault},
		{"func", "go", ColorKeyword},
		{"TRUE", "python", ColorKeyword},
		{"print(", "python", ColorFunction},
		{"run()", "bash", ColorFunction},
		{"value", "python", ColorDefault},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, SyntaxColor(tt.token, tt.language))
		})
	}
}

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, "javascript", NormalizeLanguage("js"))
	assert.Equal(t, "bash", NormalizeLanguage("shell"))
	assert.Equal(t, "python", NormalizeLanguage(" Python "))
	assert.Equal(t, "python", NormalizeLanguage("py"))
	assert.Equal(t, "", NormalizeLanguage(""))
	assert.Equal(t, "", NormalizeLanguage("klingon"))
}

func TestCodeBlockHeight(t *testing.T) {
	assert.Equal(t, CodeBlockMinHeight, CodeBlockHeight("one line"))
	assert.Equal(t, 2.0, CodeBlockHeight(strings.Repeat("x\n", 7)+"x"))
	assert.Equal(t, CodeBlockMaxHeight, CodeBlockHeight(strings.Repeat("x\n", 40)))
}
