// Package ast - Visitor pattern implementation for AST traversal.
package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Visitor has one method per concrete node type. Because the sum types are
// closed, implementing Visitor covers every possible node.
type Visitor interface {
	// Expression visitors.
	VisitIdentExpr(node *IdentExpr) interface{}
	VisitNumberLit(node *NumberLit) interface{}
	VisitAssignment(node *Assignment) interface{}

	// Declaration visitors.
	VisitLetDecl(node *LetDecl) interface{}
	VisitTypeAlias(node *TypeAlias) interface{}

	// Statement visitors.
	VisitExprStmt(node *ExprStmt) interface{}
	VisitDeclStmt(node *DeclStmt) interface{}
}

// BaseVisitor provides a default implementation of the Visitor interface
// that returns nil for all visits.
type BaseVisitor struct{}

func (v *BaseVisitor) VisitIdentExpr(node *IdentExpr) interface{}   { return nil }
func (v *BaseVisitor) VisitNumberLit(node *NumberLit) interface{}   { return nil }
func (v *BaseVisitor) VisitAssignment(node *Assignment) interface{} { return nil }
func (v *BaseVisitor) VisitLetDecl(node *LetDecl) interface{}       { return nil }
func (v *BaseVisitor) VisitTypeAlias(node *TypeAlias) interface{}   { return nil }
func (v *BaseVisitor) VisitExprStmt(node *ExprStmt) interface{}     { return nil }
func (v *BaseVisitor) VisitDeclStmt(node *DeclStmt) interface{}     { return nil }

// WalkingVisitor traverses a whole subtree, calling the wrapped visitor on
// every node in pre-order.
type WalkingVisitor struct {
	visitor Visitor
}

// NewWalkingVisitor creates a new walking visitor that delegates to the provided visitor.
func NewWalkingVisitor(visitor Visitor) *WalkingVisitor {
	return &WalkingVisitor{visitor: visitor}
}

// Walk traverses the AST starting from the given node.
func (w *WalkingVisitor) Walk(node Node) interface{} {
	if node == nil {
		return nil
	}
	return node.Accept(w)
}

// WalkModule walks every statement of mod in order.
func (w *WalkingVisitor) WalkModule(mod *Module) {
	for _, stmt := range mod.Statements {
		stmt.Accept(w)
	}
}

func (w *WalkingVisitor) VisitIdentExpr(node *IdentExpr) interface{} {
	return w.visitor.VisitIdentExpr(node)
}

func (w *WalkingVisitor) VisitNumberLit(node *NumberLit) interface{} {
	return w.visitor.VisitNumberLit(node)
}

// VisitAssignment walks a right-nested chain without recursing per link.
func (w *WalkingVisitor) VisitAssignment(node *Assignment) interface{} {
	result := w.visitor.VisitAssignment(node)

	value := node.Value
	for {
		next, ok := value.(*Assignment)
		if !ok {
			break
		}
		w.visitor.VisitAssignment(next)
		value = next.Value
	}
	value.Accept(w)

	return result
}

func (w *WalkingVisitor) VisitLetDecl(node *LetDecl) interface{} {
	result := w.visitor.VisitLetDecl(node)
	node.Init.Accept(w)
	return result
}

func (w *WalkingVisitor) VisitTypeAlias(node *TypeAlias) interface{} {
	return w.visitor.VisitTypeAlias(node)
}

func (w *WalkingVisitor) VisitExprStmt(node *ExprStmt) interface{} {
	result := w.visitor.VisitExprStmt(node)
	node.X.Accept(w)
	return result
}

func (w *WalkingVisitor) VisitDeclStmt(node *DeclStmt) interface{} {
	result := w.visitor.VisitDeclStmt(node)
	node.Decl.Accept(w)
	return result
}

// NodeCountVisitor counts nodes by kind.
type NodeCountVisitor struct {
	BaseVisitor
	Counts map[string]int
}

// NewNodeCountVisitor creates a counter with an empty tally.
func NewNodeCountVisitor() *NodeCountVisitor {
	return &NodeCountVisitor{Counts: make(map[string]int)}
}

// CountModule tallies every node in mod and returns the total.
func (n *NodeCountVisitor) CountModule(mod *Module) int {
	NewWalkingVisitor(n).WalkModule(mod)

	total := 0
	for _, c := range n.Counts {
		total += c
	}
	return total
}

func (n *NodeCountVisitor) VisitIdentExpr(node *IdentExpr) interface{} {
	n.Counts["IdentExpr"]++
	return nil
}

func (n *NodeCountVisitor) VisitNumberLit(node *NumberLit) interface{} {
	n.Counts["NumberLit"]++
	return nil
}

func (n *NodeCountVisitor) VisitAssignment(node *Assignment) interface{} {
	n.Counts["Assignment"]++
	return nil
}

func (n *NodeCountVisitor) VisitLetDecl(node *LetDecl) interface{} {
	n.Counts["LetDecl"]++
	return nil
}

func (n *NodeCountVisitor) VisitTypeAlias(node *TypeAlias) interface{} {
	n.Counts["TypeAlias"]++
	return nil
}

func (n *NodeCountVisitor) VisitExprStmt(node *ExprStmt) interface{} {
	n.Counts["ExprStmt"]++
	return nil
}

func (n *NodeCountVisitor) VisitDeclStmt(node *DeclStmt) interface{} {
	n.Counts["DeclStmt"]++
	return nil
}

// dumpVisitor renders each node as one indented line.
type dumpVisitor struct {
	out   *strings.Builder
	depth int
}

func (d *dumpVisitor) line(format string, args ...interface{}) {
	d.out.WriteString(strings.Repeat("  ", d.depth))
	fmt.Fprintf(d.out, format, args...)
	d.out.WriteString("\n")
}

func (d *dumpVisitor) nested(node Node) {
	d.depth++
	node.Accept(d)
	d.depth--
}

func (d *dumpVisitor) VisitIdentExpr(node *IdentExpr) interface{} {
	d.line("Ident %s #%d @%d", node.Ident.Name, node.Ident.ID, node.Ident.NamePos)
	return nil
}

func (d *dumpVisitor) VisitNumberLit(node *NumberLit) interface{} {
	d.line("Number %s @%d", strconv.FormatFloat(node.Value, 'g', -1, 64), node.ValuePos)
	return nil
}

func (d *dumpVisitor) VisitAssignment(node *Assignment) interface{} {
	d.line("Assign %s #%d @%d", node.Target.Name, node.Target.ID, node.Target.NamePos)
	d.nested(node.Value)
	return nil
}

func (d *dumpVisitor) VisitLetDecl(node *LetDecl) interface{} {
	if node.Type != nil {
		d.line("Let %s #%d: %s @%d", node.Name.Name, node.Name.ID, node.Type.Name, node.LetPos)
	} else {
		d.line("Let %s #%d @%d", node.Name.Name, node.Name.ID, node.LetPos)
	}
	d.nested(node.Init)
	return nil
}

func (d *dumpVisitor) VisitTypeAlias(node *TypeAlias) interface{} {
	d.line("Type %s #%d = %s @%d", node.Name.Name, node.Name.ID, node.Aliased.Name, node.TypePos)
	return nil
}

func (d *dumpVisitor) VisitExprStmt(node *ExprStmt) interface{} {
	d.line("ExprStmt @%d", node.StmtPos)
	d.nested(node.X)
	return nil
}

func (d *dumpVisitor) VisitDeclStmt(node *DeclStmt) interface{} {
	d.line("DeclStmt @%d", node.StmtPos)
	d.nested(node.Decl)
	return nil
}

// Dump returns an indented tree rendering of node.
func Dump(node Node) string {
	var b strings.Builder
	node.Accept(&dumpVisitor{out: &b})
	return b.String()
}

// Fprint writes the statements of mod as a tree, followed by its symbol
// table when the module has been bound.
func Fprint(w io.Writer, mod *Module) error {
	var b strings.Builder
	d := &dumpVisitor{out: &b}
	for _, stmt := range mod.Statements {
		stmt.Accept(d)
	}

	if mod.Scope != nil {
		b.WriteString("symbols:\n")
		for _, sym := range mod.Scope.Symbols() {
			kinds := make([]string, len(sym.Decls))
			for i, decl := range sym.Decls {
				kinds[i] = decl.Kind().String()
			}
			fmt.Fprintf(&b, "  %s [%s] value=%t\n", sym.Name, strings.Join(kinds, ","), sym.HasValueDecl())
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
