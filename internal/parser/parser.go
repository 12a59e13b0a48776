// Package parser implements the minilang recursive descent parser.
//
// The parser looks at exactly one token (the lexer's current token) and
// never backtracks. A statement that fails to parse is reported once,
// dropped, and skipped with panic-mode recovery so later statements are
// still parsed.
package parser

import (
	"strconv"

	"github.com/orizon-lang/minilang/internal/ast"
	mlerrors "github.com/orizon-lang/minilang/internal/errors"
	"github.com/orizon-lang/minilang/internal/lexer"
)

// DefaultMaxAssignmentDepth bounds the length of `a = b = ... = x` chains.
const DefaultMaxAssignmentDepth = 4096

// Options configures a Parser.
type Options struct {
	// MaxAssignmentDepth is the longest accepted assignment chain.
	// Zero or less selects DefaultMaxAssignmentDepth.
	MaxAssignmentDepth int
}

// DefaultOptions returns the default parser options.
func DefaultOptions() Options {
	return Options{MaxAssignmentDepth: DefaultMaxAssignmentDepth}
}

// Parser represents the recursive descent parser
type Parser struct {
	lexer  *lexer.Lexer
	ids    *ast.IDGen
	opts   Options
	errors []*ParseError
}

// NewParser creates a new parser reading from l. Each parser owns its
// identifier generator, so IDs start at 0 for every parsing session.
func NewParser(l *lexer.Lexer, opts Options) *Parser {
	if opts.MaxAssignmentDepth <= 0 {
		opts.MaxAssignmentDepth = DefaultMaxAssignmentDepth
	}

	return &Parser{
		lexer:  l,
		ids:    &ast.IDGen{},
		opts:   opts,
		errors: make([]*ParseError, 0),
	}
}

// ParseString parses src in a fresh session and returns the module, every
// failure, and the module-level error.
func ParseString(src string, opts Options) (*ast.Module, []*ParseError, error) {
	p := NewParser(lexer.New(src), opts)
	mod, err := p.ParseModule()
	return mod, p.Errors(), err
}

// Errors returns every failure in the order it was found, one per failed
// statement.
func (p *Parser) Errors() []*ParseError {
	return p.errors
}

// ParseModule parses statements until end of input. The module always
// holds every statement that parsed; the error is nil when all of them did
// and otherwise the last failure encountered.
func (p *Parser) ParseModule() (*ast.Module, error) {
	if !p.lexer.Started() {
		p.nextToken()
	}

	mod := &ast.Module{Statements: make([]ast.Statement, 0)}

	var last error
	for !p.currentTokenIs(lexer.TokenEOF) {
		scanned := p.lexer.Scanned()

		stmt, err := p.parseStatement()
		if err != nil {
			p.errors = append(p.errors, err)
			last = err
			p.synchronize(scanned)
			continue
		}

		mod.Statements = append(mod.Statements, stmt)
	}

	return mod, last
}

// nextToken advances the lexer by one token
func (p *Parser) nextToken() {
	p.lexer.Scan()
}

func (p *Parser) current() lexer.Token {
	return p.lexer.Current()
}

// currentTokenIs checks if the current token is of the given type
func (p *Parser) currentTokenIs(tokenType lexer.TokenType) bool {
	return p.lexer.Current().Type == tokenType
}

// accept consumes the current token if it has the given type.
func (p *Parser) accept(tokenType lexer.TokenType) bool {
	if p.currentTokenIs(tokenType) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes a token of the given type or fails at the current token.
func (p *Parser) expect(tokenType lexer.TokenType) *ParseError {
	if p.accept(tokenType) {
		return nil
	}

	tok := p.current()
	return newError(mlerrors.CodeUnexpectedToken, tok,
		"expected a token of type %s, got %s", tokenType, tok.Type)
}

// ====== Grammar Rules ======

// parseStatement parses one statement including its terminating semicolon.
func (p *Parser) parseStatement() (ast.Statement, *ParseError) {
	start := ast.Pos(p.current().Offset)

	var stmt ast.Statement
	switch p.current().Type {
	case lexer.TokenLet:
		decl, err := p.parseLetDeclaration()
		if err != nil {
			return nil, err
		}
		stmt = &ast.DeclStmt{StmtPos: start, Decl: decl}
	case lexer.TokenTypeKeyword:
		decl, err := p.parseTypeAlias()
		if err != nil {
			return nil, err
		}
		stmt = &ast.DeclStmt{StmtPos: start, Decl: decl}
	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt = &ast.ExprStmt{StmtPos: start, X: expr}
	}

	if err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}

	return stmt, nil
}

// parseLetDeclaration parses `let name (: type)? = expr` without the
// trailing semicolon.
func (p *Parser) parseLetDeclaration() (*ast.LetDecl, *ParseError) {
	letPos := ast.Pos(p.current().Offset)
	p.nextToken()

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	var typeName *ast.Ident
	if p.accept(lexer.TokenColon) {
		typ, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		typeName = &typ
	}

	if err := p.expect(lexer.TokenAssign); err != nil {
		return nil, err
	}

	init, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.LetDecl{LetPos: letPos, Name: name, Type: typeName, Init: init}, nil
}

// parseTypeAlias parses `type name = other` without the trailing semicolon.
func (p *Parser) parseTypeAlias() (*ast.TypeAlias, *ParseError) {
	typePos := ast.Pos(p.current().Offset)
	p.nextToken()

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	if err := p.expect(lexer.TokenAssign); err != nil {
		return nil, err
	}

	aliased, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	return &ast.TypeAlias{TypePos: typePos, Name: name, Aliased: aliased}, nil
}

// parseExpression parses an identifier or literal, optionally followed by
// `= expr` when it is an identifier. Chains are right-associative and are
// collected in a loop so their length is bounded by MaxAssignmentDepth
// rather than by the call stack. A literal followed by `=` is returned as
// is, leaving the `=` for the caller to reject.
func (p *Parser) parseExpression() (ast.Expression, *ParseError) {
	var targets []ast.Ident

	for {
		expr, err := p.parseIdentifierOrLiteral()
		if err != nil {
			return nil, err
		}

		ident, ok := expr.(*ast.IdentExpr)
		if !ok || !p.currentTokenIs(lexer.TokenAssign) {
			return wrapAssignments(targets, expr), nil
		}

		assign := p.current()
		p.nextToken()

		targets = append(targets, ident.Ident)
		if len(targets) > p.opts.MaxAssignmentDepth {
			return nil, newError(mlerrors.CodeAssignmentTooDeep, assign,
				"assignment chain exceeds %d levels", p.opts.MaxAssignmentDepth)
		}
	}
}

// wrapAssignments nests value under targets from right to left, so that
// targets [a, b] and value c yield a = (b = c).
func wrapAssignments(targets []ast.Ident, value ast.Expression) ast.Expression {
	for i := len(targets) - 1; i >= 0; i-- {
		value = &ast.Assignment{Target: targets[i], Value: value}
	}
	return value
}

// parseIdentifierOrLiteral parses a single identifier or number.
func (p *Parser) parseIdentifierOrLiteral() (ast.Expression, *ParseError) {
	tok := p.current()

	switch tok.Type {
	case lexer.TokenIdentifier:
		p.nextToken()
		return &ast.IdentExpr{Ident: p.ids.NewIdent(ast.Pos(tok.Offset), tok.Literal)}, nil

	case lexer.TokenNumber:
		p.nextToken()
		value, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, newError(mlerrors.CodeInvalidNumericLiteral, tok,
				"could not parse as double: %s", tok.Literal)
		}
		return &ast.NumberLit{ValuePos: ast.Pos(tok.Offset), Literal: tok.Literal, Value: value}, nil
	}

	return nil, newError(mlerrors.CodeUnexpectedToken, tok,
		"expected identifier or a literal but got %s", tok.Type)
}

// parseIdentifier parses an identifier. A literal in its place is rejected
// after it has been consumed.
func (p *Parser) parseIdentifier() (ast.Ident, *ParseError) {
	tok := p.current()

	expr, err := p.parseIdentifierOrLiteral()
	if err != nil {
		return ast.Ident{}, err
	}

	ident, ok := expr.(*ast.IdentExpr)
	if !ok {
		return ast.Ident{}, newError(mlerrors.CodeUnexpectedToken, tok,
			"expected identifier but got a literal")
	}

	return ident.Ident, nil
}
