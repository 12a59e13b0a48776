package parser

import (
	"github.com/orizon-lang/minilang/internal/lexer"
)

// synchronize discards tokens after a failed statement until parsing can
// safely resume: the previous token ended a statement, the current token is
// a keyword (every keyword starts a statement), or the input is exhausted.
// scannedAtStart is the lexer's token count when the failed statement
// began; if nothing was consumed since, one token is dropped first so the
// parser always moves forward.
func (p *Parser) synchronize(scannedAtStart int) {
	if p.lexer.Scanned() == scannedAtStart {
		p.nextToken()
	}

	for !p.currentTokenIs(lexer.TokenEOF) {
		if p.lexer.Previous().Type == lexer.TokenSemicolon {
			return
		}
		if p.current().Type.IsKeyword() {
			return
		}
		p.nextToken()
	}
}
