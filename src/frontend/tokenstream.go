package frontend

import "strings"

// TokenStream lexes src and renders its tokens one per line, in the format
// item.String() produces. It is used only by the command line's -ts flag
// to inspect the lexer in isolation from the parser.
func TokenStream(src string) (string, error) {
	items, err := Lex(src)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, it := range items {
		b.WriteString(it.String())
		b.WriteByte('\n')
	}
	return b.String(), nil
}
