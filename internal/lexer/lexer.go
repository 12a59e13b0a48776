// Package lexer implements the minilang lexical analyzer.
//
// The lexer is pull based: the parser asks for one token at a time with
// Scan and inspects it with Current. Only the current token and the one
// before it are retained. The lexer never reports errors; characters it
// does not understand come back as TokenUnknown for the parser to reject.
package lexer

import (
	"fmt"
	"unicode/utf8"
)

// TokenType represents the type of a token
type TokenType int

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// Token types
const (
	// 特殊トークン
	TokenEOF TokenType = iota
	TokenUnknown

	// リテラル
	TokenIdentifier
	TokenNumber

	// キーワード
	TokenFunction
	TokenLet
	TokenTypeKeyword
	TokenReturn

	// 記号
	TokenAssign
	TokenSemicolon
	TokenColon
)

// tokenNames provides string representations for token types
var tokenNames = map[TokenType]string{
	TokenEOF:     "EOF",
	TokenUnknown: "UNKNOWN",

	TokenIdentifier: "IDENTIFIER",
	TokenNumber:     "NUMBER",

	TokenFunction:    "FUNCTION",
	TokenLet:         "LET",
	TokenTypeKeyword: "TYPE",
	TokenReturn:      "RETURN",

	TokenAssign:    "ASSIGN",
	TokenSemicolon: "SEMICOLON",
	TokenColon:     "COLON",
}

// keywords maps string keywords to their token types
var keywords = map[string]TokenType{
	"function": TokenFunction,
	"let":      TokenLet,
	"type":     TokenTypeKeyword,
	"return":   TokenReturn,
}

// IsKeyword reports whether tt is one of the reserved words.
func (tt TokenType) IsKeyword() bool {
	switch tt {
	case TokenFunction, TokenLet, TokenTypeKeyword, TokenReturn:
		return true
	}
	return false
}

// Token represents a lexical token. Literal is the exact slice of source
// the token was scanned from; it is empty for TokenEOF.
type Token struct {
	Type    TokenType
	Literal string
	Offset  int // 0-based byte offset of the first byte
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Literal)
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Offset: %d}", t.Type, t.Literal, t.Offset)
}

// Lexer represents the lexical analyzer
type Lexer struct {
	input    string
	position int // next byte to examine

	current  Token
	previous Token
	started  bool
	scanned  int // number of tokens produced so far
}

// New creates a new lexer instance. No token is available until the
// first call to Scan.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Current returns the current token without advancing.
func (l *Lexer) Current() Token {
	return l.current
}

// Previous returns the token that was current before the last Scan.
func (l *Lexer) Previous() Token {
	return l.previous
}

// Scanned returns how many tokens have been produced. The parser uses it to
// tell whether a failed statement consumed anything.
func (l *Lexer) Scanned() int {
	return l.scanned
}

// Started reports whether Scan has been called at least once.
func (l *Lexer) Started() bool {
	return l.started
}

// Scan skips whitespace and makes the next token current. Once the end of
// input has been reached further calls do nothing.
func (l *Lexer) Scan() {
	if l.started && l.current.Type == TokenEOF {
		return
	}

	l.skipWhitespace()
	start := l.position

	var tok Token
	switch {
	case l.position >= len(l.input):
		tok = Token{Type: TokenEOF, Offset: start}
	case isDigit(l.input[start]):
		tok = Token{Type: TokenNumber, Literal: l.readNumber(), Offset: start}
	case isLetter(l.input[start]):
		ident := l.readIdentifier()
		tok = Token{Type: lookupIdent(ident), Literal: ident, Offset: start}
	default:
		tok = l.readPunctuation()
	}

	l.setToken(tok)
}

// Tokens scans the rest of the input and returns every token up to and
// including EOF.
func (l *Lexer) Tokens() []Token {
	var tokens []Token
	for {
		l.Scan()
		tokens = append(tokens, l.current)
		if l.current.Type == TokenEOF {
			return tokens
		}
	}
}

func (l *Lexer) setToken(tok Token) {
	l.previous = l.current
	l.current = tok
	l.started = true
	l.scanned++
}

// skipWhitespace skips the ASCII whitespace set: space, \t, \n, \v, \f, \r
func (l *Lexer) skipWhitespace() {
	for l.position < len(l.input) && isSpace(l.input[l.position]) {
		l.position++
	}
}

// readNumber reads a run of decimal digits. Signs, fractions and exponents
// are not part of the grammar.
func (l *Lexer) readNumber() string {
	start := l.position
	for l.position < len(l.input) && isDigit(l.input[l.position]) {
		l.position++
	}
	return l.input[start:l.position]
}

// readIdentifier reads a letter followed by letters, digits or underscores.
func (l *Lexer) readIdentifier() string {
	start := l.position
	for l.position < len(l.input) && isIdentifierChar(l.input[l.position]) {
		l.position++
	}
	return l.input[start:l.position]
}

func (l *Lexer) readPunctuation() Token {
	start := l.position
	ch := l.input[start]

	switch ch {
	case '=':
		l.position++
		return Token{Type: TokenAssign, Literal: "=", Offset: start}
	case ';':
		l.position++
		return Token{Type: TokenSemicolon, Literal: ";", Offset: start}
	case ':':
		l.position++
		return Token{Type: TokenColon, Literal: ":", Offset: start}
	}

	// One unknown character. A multi-byte rune is kept whole so carets
	// never land in the middle of it.
	size := 1
	if ch >= utf8.RuneSelf {
		if r, n := utf8.DecodeRuneInString(l.input[start:]); r != utf8.RuneError {
			size = n
		}
	}
	l.position += size

	return Token{Type: TokenUnknown, Literal: l.input[start:l.position], Offset: start}
}

// isLetter checks if character is ASCII letter
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

// isDigit checks if character is ASCII digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentifierChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// lookupIdent checks if identifier is keyword
func lookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdentifier
}
