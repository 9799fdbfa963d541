package lexer

// ASCII character lookup tables for fast classification (zero-allocation)
//
// Use inline bounds-checked lookups:
//
//	if ch < 128 && isWordStart[ch] { ... }
//
// Bytes >= 128 are never classification characters in PDDL; they fall
// through to the OTHER catch-all so no input is dropped.
var (
	isSpace     [128]bool // Space, tab, carriage return, newline, form feed
	isLetter    [128]bool // a-z, A-Z, _
	isDigit     [128]bool // 0-9
	isWordStart [128]bool // Letter or _
	isWordPart  [128]bool // Letter, digit, _ or - (PDDL names allow hyphens)
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)

		isSpace[i] = ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f'

		isLetter[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'

		isDigit[i] = '0' <= ch && ch <= '9'

		isWordStart[i] = isLetter[i]
		isWordPart[i] = isLetter[i] || isDigit[i] || ch == '-'
	}
}

// toLower folds an ASCII byte to lower case. PDDL keywords and operator
// spellings are case-insensitive.
func toLower(ch byte) byte {
	if 'A' <= ch && ch <= 'Z' {
		return ch + ('a' - 'A')
	}
	return ch
}

// foldASCII lower-cases an ASCII byte slice into a string.
func foldASCII(b []byte) string {
	for i := 0; i < len(b); i++ {
		if 'A' <= b[i] && b[i] <= 'Z' {
			// Slow path only when upper-case actually present
			out := make([]byte, len(b))
			for j := range b {
				out[j] = toLower(b[j])
			}
			return string(out)
		}
	}
	return string(b)
}
