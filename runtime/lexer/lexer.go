package lexer

import (
	"fmt"
	"time"

	"github.com/pddl-lang/pddl/core/invariant"
)

// TelemetryMode controls telemetry collection (production-safe)
type TelemetryMode int

const (
	TelemetryOff    TelemetryMode = iota // Zero overhead (default)
	TelemetryBasic                       // Token counts only
	TelemetryTiming                      // Token counts + timing per type
)

// NoCutoff disables the scan bound on a buffered Lexer: the whole input is
// tokenized.
const NoCutoff = -1

// LexerOpt represents a lexer configuration option
type LexerOpt func(*LexerConfig)

// LexerConfig holds lexer configuration
type LexerConfig struct {
	cutoff    int
	telemetry TelemetryMode
}

// WithCutoff bounds tokenization: scanning stops once a token starts past
// the given byte offset. The token containing the offset is still emitted,
// which is what "tokenize up to the cursor" completion needs.
func WithCutoff(offset int) LexerOpt {
	return func(c *LexerConfig) {
		c.cutoff = offset
	}
}

// WithTelemetryBasic enables basic telemetry (token counts only)
func WithTelemetryBasic() LexerOpt {
	return func(c *LexerConfig) {
		c.telemetry = TelemetryBasic
	}
}

// WithTelemetryTiming enables timing telemetry (counts + timing per type)
func WithTelemetryTiming() LexerOpt {
	return func(c *LexerConfig) {
		c.telemetry = TelemetryTiming
	}
}

// TokenTelemetry holds per-token type telemetry (production-safe)
type TokenTelemetry struct {
	Type      TokenType
	Count     int
	TotalTime time.Duration
}

// Tokenize scans input and invokes yield once per token, left to right,
// until the input is exhausted or a token would start past cutoff. Pass
// cutoff = len(input) (or larger) to scan the whole input.
//
// Tokens are gapless and cover every byte up to the stopping point; no
// characters are silently dropped. The only failure is a negative cutoff,
// which is defensive and not expected in normal use.
func Tokenize(input []byte, cutoff int, yield func(Token)) error {
	if cutoff < 0 {
		return fmt.Errorf("lexer: cutoff must not be negative, got %d", cutoff)
	}

	s := scanner{input: input}
	prev := -1
	for s.pos < len(s.input) {
		start := s.pos
		if start > cutoff {
			break
		}
		tok := s.next()
		yield(tok)

		// INVARIANT: the scanner consumes at least one byte per token
		invariant.Invariant(s.pos > prev, "scanner must advance (stuck at %d)", s.pos)
		prev = start
	}
	return nil
}

// TokenizeAll scans the whole input with no cutoff.
func TokenizeAll(input []byte, yield func(Token)) {
	// Whole-input cutoff can never be negative
	_ = Tokenize(input, len(input), yield)
}

// Lexer is a buffered tokenizer following the Init/NextToken scanner
// pattern. All tokens are produced eagerly on Init; PDDL documents are
// small enough that the simplicity wins over streaming.
type Lexer struct {
	input      []byte
	tokens     []Token
	tokenIndex int

	cutoff    int
	hasCutoff bool

	telemetryMode  TelemetryMode
	tokenTelemetry map[TokenType]*TokenTelemetry
}

// NewLexer creates a new lexer instance with optional configuration
func NewLexer(opts ...LexerOpt) *Lexer {
	config := &LexerConfig{cutoff: NoCutoff}
	for _, opt := range opts {
		opt(config)
	}

	l := &Lexer{
		tokens:        make([]Token, 0, 256),
		cutoff:        config.cutoff,
		hasCutoff:     config.cutoff >= 0,
		telemetryMode: config.telemetry,
	}

	if config.telemetry > TelemetryOff {
		l.tokenTelemetry = make(map[TokenType]*TokenTelemetry)
	}

	return l
}

// Init resets the lexer with new input and tokenizes it.
func (l *Lexer) Init(input []byte) {
	l.input = input
	l.tokens = l.tokens[:0]
	l.tokenIndex = 0

	if l.telemetryMode > TelemetryOff && l.tokenTelemetry != nil {
		for k := range l.tokenTelemetry {
			delete(l.tokenTelemetry, k)
		}
	}

	cutoff := len(input)
	if l.hasCutoff && l.cutoff < cutoff {
		cutoff = l.cutoff
	}

	var last time.Time
	if l.telemetryMode >= TelemetryTiming {
		last = time.Now()
	}
	_ = Tokenize(input, cutoff, func(tok Token) {
		l.tokens = append(l.tokens, tok)
		var elapsed time.Duration
		if l.telemetryMode >= TelemetryTiming {
			now := time.Now()
			elapsed = now.Sub(last)
			last = now
		}
		l.recordTokenTelemetry(tok.Type, elapsed)
	})
}

// NextToken returns the next buffered token; ok is false once the stream
// is exhausted.
func (l *Lexer) NextToken() (Token, bool) {
	if l.tokenIndex >= len(l.tokens) {
		return Token{}, false
	}
	tok := l.tokens[l.tokenIndex]
	l.tokenIndex++
	return tok, true
}

// GetTokens returns all tokens, including any already consumed via NextToken.
func (l *Lexer) GetTokens() []Token {
	out := make([]Token, len(l.tokens))
	copy(out, l.tokens)
	return out
}

// GetTokenTelemetry returns per-token type telemetry (nil when disabled).
func (l *Lexer) GetTokenTelemetry() map[TokenType]*TokenTelemetry {
	if l.telemetryMode == TelemetryOff || l.tokenTelemetry == nil {
		return nil
	}

	// Return a copy to prevent external modification
	result := make(map[TokenType]*TokenTelemetry, len(l.tokenTelemetry))
	for k, v := range l.tokenTelemetry {
		c := *v
		result[k] = &c
	}
	return result
}

func (l *Lexer) recordTokenTelemetry(tokenType TokenType, elapsed time.Duration) {
	if l.telemetryMode == TelemetryOff {
		return
	}

	telemetry, exists := l.tokenTelemetry[tokenType]
	if !exists {
		telemetry = &TokenTelemetry{Type: tokenType}
		l.tokenTelemetry[tokenType] = telemetry
	}

	telemetry.Count++
	if l.telemetryMode >= TelemetryTiming {
		telemetry.TotalTime += elapsed
	}
}

// scanner holds the tokenization state. One instance per Tokenize call;
// never shared.
type scanner struct {
	input []byte
	pos   int
}

// next scans one token starting at the current position. Callers guarantee
// pos < len(input). Classification precedence, highest first: bracketed
// operator, plain brackets, keyword, parameter, dash/signed number,
// comment, whitespace, bareword, then a one-byte OTHER catch-all.
func (s *scanner) next() Token {
	start := s.pos
	ch := s.input[s.pos]

	switch {
	case ch == '(':
		if end, ok := s.matchOperator(); ok {
			return s.emit(OPERATOR, start, end)
		}
		return s.emit(LPAREN, start, start+1)

	case ch == ')':
		return s.emit(RPAREN, start, start+1)

	case ch == ':':
		if end, ok := s.matchWord(start + 1); ok {
			return s.emit(KEYWORD, start, end)
		}
		return s.emit(OTHER, start, start+1)

	case ch == '?':
		if end, ok := s.matchWord(start + 1); ok {
			return s.emit(PARAMETER, start, end)
		}
		return s.emit(OTHER, start, start+1)

	case ch == '-':
		if s.digitAt(start + 1) {
			return s.emit(OTHER, start, s.scanNumber(start+1))
		}
		return s.emit(DASH, start, start+1)

	case ch == ';':
		end := start + 1
		for end < len(s.input) && s.input[end] != '\n' {
			end++
		}
		return s.emit(COMMENT, start, end)

	case ch < 128 && isSpace[ch]:
		end := start + 1
		for end < len(s.input) && s.input[end] < 128 && isSpace[s.input[end]] {
			end++
		}
		return s.emit(WHITESPACE, start, end)

	case ch < 128 && isDigit[ch]:
		return s.emit(OTHER, start, s.scanNumber(start))

	case ch < 128 && isWordStart[ch]:
		end, _ := s.matchWord(start)
		return s.emit(OTHER, start, end)
	}

	// Catch-all: unclassified byte becomes a one-byte OTHER token
	return s.emit(OTHER, start, start+1)
}

func (s *scanner) emit(tt TokenType, start, end int) Token {
	s.pos = end
	return Token{
		Type:  tt,
		Text:  s.input[start:end],
		Start: start,
		End:   end,
	}
}

// matchOperator tries to match an operator spelling immediately after the
// open bracket at the current position. Returns the end offset of the
// combined "(op" token.
func (s *scanner) matchOperator() (int, bool) {
	after := s.pos + 1

	// Symbol operators need no boundary: "(<=", "(-", "(+"
	for _, op := range symbolOperators {
		if hasPrefixAt(s.input, after, op) {
			return after + len(op), true
		}
	}

	// Word operators must end at a non-word boundary so "(andermatt"
	// stays a plain bracket plus bareword
	if end, ok := s.matchWord(after); ok {
		word := foldASCII(s.input[after:end])
		if _, found := wordOperators[word]; found {
			return end, true
		}
	}

	return 0, false
}

// matchWord scans a word (letter start, then letters/digits/dashes) at the
// given offset. Returns the end offset and whether a word was present.
func (s *scanner) matchWord(at int) (int, bool) {
	if at >= len(s.input) || s.input[at] >= 128 || !isWordStart[s.input[at]] {
		return at, false
	}
	end := at + 1
	for end < len(s.input) && s.input[end] < 128 && isWordPart[s.input[end]] {
		end++
	}
	return end, true
}

// scanNumber scans digits with an optional single decimal point, starting
// at the first digit.
func (s *scanner) scanNumber(at int) int {
	end := at
	for end < len(s.input) && s.input[end] < 128 && isDigit[s.input[end]] {
		end++
	}
	if end < len(s.input) && s.input[end] == '.' && s.digitAt(end+1) {
		end++
		for end < len(s.input) && s.input[end] < 128 && isDigit[s.input[end]] {
			end++
		}
	}
	return end
}

func (s *scanner) digitAt(at int) bool {
	return at < len(s.input) && s.input[at] < 128 && isDigit[s.input[at]]
}

// hasPrefixAt reports whether input has the literal prefix at offset.
func hasPrefixAt(input []byte, at int, prefix string) bool {
	if at+len(prefix) > len(input) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if input[at+i] != prefix[i] {
			return false
		}
	}
	return true
}
