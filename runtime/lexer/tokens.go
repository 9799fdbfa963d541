package lexer

// TokenType classifies PDDL lexical tokens.
//
// The set is closed: every byte of input falls into exactly one of these,
// with OTHER as the catch-all so no input is ever silently dropped.
type TokenType int

const (
	// OPERATOR is an open bracket consumed together with a recognized
	// operator spelling, e.g. "(define", "(and", "(=".
	OPERATOR TokenType = iota
	LPAREN     // bare (
	RPAREN     // )
	KEYWORD    // :requirements, :action, :parameters, ...
	DASH       // - standing alone (type separator)
	PARAMETER  // ?name
	COMMENT    // ; to end of line (line break excluded)
	WHITESPACE // run of space, tab, CR, LF
	OTHER      // bareword, signed number, or any unclassified byte
	DOCUMENT   // synthetic root kind used only by the syntax tree
)

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case OPERATOR:
		return "OPERATOR"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case KEYWORD:
		return "KEYWORD"
	case DASH:
		return "DASH"
	case PARAMETER:
		return "PARAMETER"
	case COMMENT:
		return "COMMENT"
	case WHITESPACE:
		return "WHITESPACE"
	case OTHER:
		return "OTHER"
	case DOCUMENT:
		return "DOCUMENT"
	default:
		return "UNKNOWN"
	}
}

// Token is one contiguous span of source text.
//
// Tokens are gapless: End of one token equals Start of the next across the
// whole input, so concatenating token text reproduces the input exactly.
type Token struct {
	Type  TokenType
	Text  []byte // slice into the source, zero-copy
	Start int    // byte offset, inclusive
	End   int    // byte offset, exclusive
}

// String returns the token text (for testing and debugging)
func (t Token) String() string {
	return string(t.Text)
}

// Len returns the token length in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}

// OperatorName returns the operator spelling of an OPERATOR token, i.e. the
// token text without the leading bracket. Empty for other token types.
func (t Token) OperatorName() string {
	if t.Type != OPERATOR || len(t.Text) < 2 {
		return ""
	}
	return string(t.Text[1:])
}

// wordOperators are the operator spellings recognized after an open bracket.
// Covers structure heads, logical connectives, numeric effect operators and
// the temporal/constraint qualifiers of PDDL 2.1/3.0.
var wordOperators = map[string]struct{}{
	"define":          {},
	"domain":          {},
	"problem":         {},
	"and":             {},
	"or":              {},
	"not":             {},
	"when":            {},
	"forall":          {},
	"exists":          {},
	"imply":           {},
	"either":          {},
	"assign":          {},
	"increase":        {},
	"decrease":        {},
	"scale-up":        {},
	"scale-down":      {},
	"at":              {},
	"over":            {},
	"always":          {},
	"sometime":        {},
	"within":          {},
	"at-most-once":    {},
	"sometime-after":  {},
	"sometime-before": {},
	"always-within":   {},
	"hold-during":     {},
	"hold-after":      {},
	"minimize":        {},
	"maximize":        {},
}

// symbolOperators are matched after an open bracket with no boundary
// requirement, longest first.
var symbolOperators = []string{">=", "<=", "=", "<", ">", "+", "-", "*", "/"}
