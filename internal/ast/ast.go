// Package ast defines the minilang syntax tree.
//
// Expression, Declaration and Statement are closed sum types: each is an
// interface with an unexported marker method, implemented only by the node
// types in this package. Consumers dispatch with a type switch or a Visitor.
// Nodes are created once by the parser and treated as read-only afterwards.
package ast

import (
	"fmt"
	"strings"
)

// Pos is a 0-based byte offset into the source text. It is only used for
// diagnostics, never for comparing nodes.
type Pos int

// Node represents the base interface for all AST nodes
type Node interface {
	// Pos returns the offset of the first byte belonging to the node
	Pos() Pos
	// String returns the node rendered back as source text
	String() string
	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}
}

// ====== Identifiers ======

// Ident is a name occurrence. ID is unique within one parsing session and
// tells apart textually identical identifiers created at different points.
type Ident struct {
	Name    string
	ID      int
	NamePos Pos
}

func (i Ident) Pos() Pos           { return i.NamePos }
func (i Ident) String() string     { return i.Name }
func (i Ident) IsZero() bool       { return i.Name == "" }
func (i Ident) Equal(o Ident) bool { return i.ID == o.ID }

// IDGen hands out identifier IDs. It is owned by a single parsing session
// and is not safe for concurrent use.
type IDGen struct {
	next int
}

// Next returns the next unused ID, starting at 0.
func (g *IDGen) Next() int {
	id := g.next
	g.next++
	return id
}

// NewIdent creates an identifier with a fresh ID.
func (g *IDGen) NewIdent(pos Pos, name string) Ident {
	return Ident{Name: name, ID: g.Next(), NamePos: pos}
}

// ====== Expressions ======

// Expression represents all expression nodes
type Expression interface {
	Node
	expressionNode()
}

// IdentExpr is a reference to a name.
type IdentExpr struct {
	Ident Ident
}

func (e *IdentExpr) Pos() Pos                           { return e.Ident.NamePos }
func (e *IdentExpr) String() string                     { return e.Ident.Name }
func (e *IdentExpr) Accept(visitor Visitor) interface{} { return visitor.VisitIdentExpr(e) }
func (e *IdentExpr) expressionNode()                    {}

// NumberLit is a decimal literal. Literal keeps the source digits.
type NumberLit struct {
	ValuePos Pos
	Literal  string
	Value    float64
}

func (n *NumberLit) Pos() Pos                           { return n.ValuePos }
func (n *NumberLit) String() string                     { return n.Literal }
func (n *NumberLit) Accept(visitor Visitor) interface{} { return visitor.VisitNumberLit(n) }
func (n *NumberLit) expressionNode()                    {}

// Assignment is `Target = Value`. Value is never nil and belongs to this
// node alone.
type Assignment struct {
	Target Ident
	Value  Expression
}

func (a *Assignment) Pos() Pos { return a.Target.NamePos }
func (a *Assignment) String() string {
	return fmt.Sprintf("%s = %s", a.Target.Name, a.Value.String())
}
func (a *Assignment) Accept(visitor Visitor) interface{} { return visitor.VisitAssignment(a) }
func (a *Assignment) expressionNode()                    {}

// ====== Declarations ======

// DeclKind classifies declarations for redeclaration checks.
type DeclKind int

const (
	DeclLet DeclKind = iota
	DeclTypeAlias
)

func (k DeclKind) String() string {
	switch k {
	case DeclLet:
		return "let"
	case DeclTypeAlias:
		return "type"
	default:
		return "unknown"
	}
}

// Declaration represents all declaration nodes
type Declaration interface {
	Node
	// DeclName returns the identifier being declared
	DeclName() Ident
	// Kind returns the declaration kind
	Kind() DeclKind
	declarationNode()
}

// LetDecl is `let Name (: Type)? = Init;`. Type is nil when absent.
type LetDecl struct {
	LetPos Pos
	Name   Ident
	Type   *Ident
	Init   Expression
}

func (d *LetDecl) Pos() Pos        { return d.LetPos }
func (d *LetDecl) DeclName() Ident { return d.Name }
func (d *LetDecl) Kind() DeclKind  { return DeclLet }
func (d *LetDecl) String() string {
	if d.Type != nil {
		return fmt.Sprintf("let %s: %s = %s", d.Name.Name, d.Type.Name, d.Init.String())
	}
	return fmt.Sprintf("let %s = %s", d.Name.Name, d.Init.String())
}
func (d *LetDecl) Accept(visitor Visitor) interface{} { return visitor.VisitLetDecl(d) }
func (d *LetDecl) declarationNode()                   {}

// TypeAlias is `type Name = Aliased;`. Aliased is recorded, never checked.
type TypeAlias struct {
	TypePos Pos
	Name    Ident
	Aliased Ident
}

func (d *TypeAlias) Pos() Pos        { return d.TypePos }
func (d *TypeAlias) DeclName() Ident { return d.Name }
func (d *TypeAlias) Kind() DeclKind  { return DeclTypeAlias }
func (d *TypeAlias) String() string {
	return fmt.Sprintf("type %s = %s", d.Name.Name, d.Aliased.Name)
}
func (d *TypeAlias) Accept(visitor Visitor) interface{} { return visitor.VisitTypeAlias(d) }
func (d *TypeAlias) declarationNode()                   {}

// ====== Statements ======

// Statement represents all statement nodes
type Statement interface {
	Node
	statementNode()
}

// ExprStmt represents an expression used as a statement
type ExprStmt struct {
	StmtPos Pos
	X       Expression
}

func (s *ExprStmt) Pos() Pos                           { return s.StmtPos }
func (s *ExprStmt) String() string                     { return s.X.String() + ";" }
func (s *ExprStmt) Accept(visitor Visitor) interface{} { return visitor.VisitExprStmt(s) }
func (s *ExprStmt) statementNode()                     {}

// DeclStmt wraps a declaration
type DeclStmt struct {
	StmtPos Pos
	Decl    Declaration
}

func (s *DeclStmt) Pos() Pos                           { return s.StmtPos }
func (s *DeclStmt) String() string                     { return s.Decl.String() + ";" }
func (s *DeclStmt) Accept(visitor Visitor) interface{} { return visitor.VisitDeclStmt(s) }
func (s *DeclStmt) statementNode()                     {}

// ====== Module ======

// Module is a parsed source text. Statements keep program order; Scope is
// nil until the binder has run.
type Module struct {
	Statements []Statement
	Scope      *Scope
}

// Declarations returns the declaration statements in program order.
func (m *Module) Declarations() []Declaration {
	var decls []Declaration
	for _, stmt := range m.Statements {
		if ds, ok := stmt.(*DeclStmt); ok {
			decls = append(decls, ds.Decl)
		}
	}
	return decls
}

// String renders the module back as source, one statement per line.
func (m *Module) String() string {
	var b strings.Builder
	for i, stmt := range m.Statements {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(stmt.String())
	}
	return b.String()
}
