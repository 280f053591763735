package presenter

import (
	"strings"
	"unicode"

	"github.com/alecthomas/chroma/v2/lexers"
	"golang.org/x/text/cases"
)

const (
	CodeBlockMinHeight  = 1.0
	CodeBlockMaxHeight  = 4.0
	CodeBlockLineHeight = 0.25
)

// Syntax palette.
var (
	ColorKeyword  = RGB{197, 134, 192}
	ColorString   = RGB{206, 145, 120}
	ColorComment  = RGB{106, 153, 85}
	ColorNumber   = RGB{181, 206, 168}
	ColorFunction = RGB{220, 220, 170}
	ColorDefault  = RGB{212, 212, 212}
)

// CodeToken is a coloured slice of a code block.
type CodeToken struct {
	Text  string
	Color RGB
}

var foldCase = cases.Fold()

func keywordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[foldCase.String(w)] = struct{}{}
	}
	return set
}

var keywords = map[string]map[string]struct{}{
	"python": keywordSet("def", "class", "if", "else", "elif", "for", "while", "import", "from",
		"return", "try", "except", "finally", "with", "as", "pass", "break", "continue", "raise",
		"lambda", "and", "or", "not", "in", "is", "None", "True", "False", "yield", "assert",
		"del", "global", "nonlocal", "async", "await"),
	"javascript": keywordSet("function", "var", "let", "const", "if", "else", "for", "while",
		"do", "switch", "case", "break", "continue", "return", "try", "catch", "finally", "throw",
		"new", "this", "class", "extends", "import", "export", "default", "async", "await",
		"typeof", "instanceof", "void", "null", "undefined", "true", "false"),
	"java": keywordSet("public", "private", "protected", "static", "final", "class", "interface",
		"enum", "extends", "implements", "if", "else", "for", "while", "do", "switch", "case",
		"break", "continue", "return", "try", "catch", "finally", "throw", "new", "this", "super",
		"void", "true", "false", "null", "import", "package", "abstract", "synchronized"),
	"go": keywordSet("package", "import", "func", "type", "struct", "interface", "if", "else",
		"for", "range", "switch", "case", "default", "break", "continue", "goto", "return",
		"defer", "go", "const", "var", "make", "new", "true", "false", "iota", "nil", "map",
		"chan", "select"),
	"bash": keywordSet("if", "then", "else", "elif", "fi", "case", "esac", "for", "while",
		"until", "do", "done", "break", "continue", "function", "return", "export", "local",
		"readonly", "declare", "unset", "in"),
	"sql": keywordSet("select", "from", "where", "and", "or", "not", "in", "like", "between",
		"is", "null", "join", "inner", "left", "right", "full", "on", "as", "group", "by",
		"having", "order", "distinct", "insert", "into", "values", "update", "set", "delete",
		"create", "table", "database", "index", "alter", "drop", "truncate", "case", "when",
		"then", "end"),
	"yaml": keywordSet("true", "false", "yes", "no", "on", "off", "null"),
	"json": keywordSet("true", "false", "null"),
}

var lineComments = map[string]string{
	"python":     "#",
	"bash":       "#",
	"yaml":       "#",
	"javascript": "//",
	"java":       "//",
	"go":         "//",
	"sql":        "--",
}

// NormalizeLanguage maps a fence language tag onto one of the tokenizer's
// languages. js and shell are the fixed aliases; other tags go through
// chroma's lexer registry so that names like py, golang or sh resolve too.
// An empty result means the language is not supported.
func NormalizeLanguage(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	switch language {
	case "js":
		return "javascript"
	case "shell":
		return "bash"
	}
	if _, ok := keywords[language]; ok {
		return language
	}
	if language == "" {
		return ""
	}
	if lexer := lexers.Get(language); lexer != nil {
		name := strings.ToLower(lexer.Config().Name)
		if _, ok := keywords[name]; ok {
			return name
		}
	}
	return ""
}

// SyntaxColor classifies a single token. Checks run in order: quoted
// string, comment prefix, numeric literal, keyword, function call form
// ("name(" or "name()"), default.
func SyntaxColor(token, language string) RGB {
	language = NormalizeLanguage(language)

	if len(token) >= 2 && (token[0] == '"' && token[len(token)-1] == '"' ||
		token[0] == '\'' && token[len(token)-1] == '\'') {
		return ColorString
	}

	if prefix, ok := lineComments[language]; ok && strings.HasPrefix(token, prefix) {
		return ColorComment
	}
	if language == "sql" && strings.HasPrefix(token, "/*") {
		return ColorComment
	}

	if isNumber(token) {
		return ColorNumber
	}

	if set, ok := keywords[language]; ok {
		if _, ok := set[foldCase.String(token)]; ok {
			return ColorKeyword
		}
	}

	if strings.HasSuffix(token, "(") || strings.HasSuffix(token, "()") {
		return ColorFunction
	}
	return ColorDefault
}

// isNumber accepts digit runs with at most one decimal point and an
// optional leading minus.
func isNumber(token string) bool {
	token = strings.TrimPrefix(token, "-")
	if token == "" {
		return false
	}
	digits, dots := 0, 0
	for _, r := range token {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// TokenizeCode splits code into coloured tokens with a small character
// scanner. Unsupported languages come back as one default-coloured token
// holding the whole input; empty code in a supported language has no
// tokens.
func TokenizeCode(code, language string) []CodeToken {
	lang := NormalizeLanguage(language)
	if lang == "" {
		return []CodeToken{{Text: code, Color: ColorDefault}}
	}

	src := []rune(code)
	n := len(src)
	var tokens []CodeToken
	emit := func(start, end int, color RGB) {
		tokens = append(tokens, CodeToken{Text: string(src[start:end]), Color: color})
	}
	comment := lineComments[lang]

	i := 0
	for i < n {
		start := i
		c := src[i]

		switch {
		case unicode.IsSpace(c):
			for i < n && unicode.IsSpace(src[i]) {
				i++
			}
			emit(start, i, ColorDefault)

		case c == '"' || c == '\'':
			i++
			for i < n && src[i] != c {
				if src[i] == '\\' && i+1 < n {
					i += 2
					continue
				}
				i++
			}
			if i < n {
				i++
			}
			emit(start, i, ColorString)

		case comment != "" && hasRunePrefix(src[i:], comment):
			for i < n && src[i] != '\n' {
				i++
			}
			emit(start, i, ColorComment)

		case unicode.IsLetter(c) || c == '_':
			for i < n && (unicode.IsLetter(src[i]) || unicode.IsDigit(src[i]) || src[i] == '_') {
				i++
			}
			word := string(src[start:i])
			color := SyntaxColor(word, lang)
			if color == ColorDefault && i < n && src[i] == '(' {
				color = ColorFunction
			}
			emit(start, i, color)

		case unicode.IsDigit(c):
			for i < n && (unicode.IsDigit(src[i]) || src[i] == '.') {
				i++
			}
			emit(start, i, SyntaxColor(string(src[start:i]), lang))

		default:
			i++
			emit(start, i, ColorDefault)
		}
	}
	return tokens
}

func hasRunePrefix(src []rune, prefix string) bool {
	i := 0
	for _, r := range prefix {
		if i >= len(src) || src[i] != r {
			return false
		}
		i++
	}
	return true
}

// CodeBlockHeight is the rendered height in inches of a code block,
// a quarter inch per line clamped to [1, 4].
func CodeBlockHeight(code string) float64 {
	lines := strings.Count(code, "\n") + 1
	h := float64(lines) * CodeBlockLineHeight
	if h < CodeBlockMinHeight {
		h = CodeBlockMinHeight
	}
	if h > CodeBlockMaxHeight {
		h = CodeBlockMaxHeight
	}
	return h
}
