package ast

import (
	"bytes"
	"strings"
	"testing"
)

// buildSample builds the tree for:
//
//	let a = 1;
//	let b: number = 2;
//	let c = a = b;
func buildSample(g *IDGen) *Module {
	a := g.NewIdent(4, "a")
	letA := &LetDecl{LetPos: 0, Name: a, Init: &NumberLit{ValuePos: 8, Literal: "1", Value: 1}}

	b := g.NewIdent(15, "b")
	typ := g.NewIdent(18, "number")
	letB := &LetDecl{LetPos: 11, Name: b, Type: &typ, Init: &NumberLit{ValuePos: 27, Literal: "2", Value: 2}}

	c := g.NewIdent(34, "c")
	target := g.NewIdent(38, "a")
	ref := g.NewIdent(42, "b")
	letC := &LetDecl{
		LetPos: 30,
		Name:   c,
		Init:   &Assignment{Target: target, Value: &IdentExpr{Ident: ref}},
	}

	return &Module{Statements: []Statement{
		&DeclStmt{StmtPos: 0, Decl: letA},
		&DeclStmt{StmtPos: 11, Decl: letB},
		&DeclStmt{StmtPos: 30, Decl: letC},
	}}
}

func TestIDGen(t *testing.T) {
	var g IDGen

	first := g.NewIdent(0, "x")
	second := g.NewIdent(5, "x")

	if first.ID != 0 || second.ID != 1 {
		t.Fatalf("ids = %d, %d; want 0, 1", first.ID, second.ID)
	}
	if first.Equal(second) {
		t.Error("identifiers with different ids must not be equal")
	}
	if !first.Equal(first) {
		t.Error("identifier should equal itself")
	}

	// Sessions are independent.
	var other IDGen
	if id := other.Next(); id != 0 {
		t.Errorf("fresh generator started at %d", id)
	}
}

func TestIdentZero(t *testing.T) {
	var id Ident
	if !id.IsZero() {
		t.Error("zero Ident should report IsZero")
	}
	if (Ident{Name: "a"}).IsZero() {
		t.Error("named Ident should not report IsZero")
	}
}

func TestNodeStrings(t *testing.T) {
	var g IDGen
	mod := buildSample(&g)

	want := "let a = 1;\nlet b: number = 2;\nlet c = a = b;"
	if got := mod.String(); got != want {
		t.Errorf("Module.String() =\n%s\nwant\n%s", got, want)
	}

	alias := &TypeAlias{TypePos: 0, Name: g.NewIdent(5, "num"), Aliased: g.NewIdent(11, "number")}
	if got := alias.String(); got != "type num = number" {
		t.Errorf("TypeAlias.String() = %q", got)
	}

	stmt := &ExprStmt{StmtPos: 0, X: &Assignment{Target: g.NewIdent(0, "x"), Value: &NumberLit{Literal: "3", Value: 3}}}
	if got := stmt.String(); got != "x = 3;" {
		t.Errorf("ExprStmt.String() = %q", got)
	}
}

func TestNodePositions(t *testing.T) {
	var g IDGen
	mod := buildSample(&g)

	letC := mod.Statements[2].(*DeclStmt).Decl.(*LetDecl)
	if letC.Pos() != 30 {
		t.Errorf("LetDecl.Pos() = %d, want 30", letC.Pos())
	}
	if letC.Init.Pos() != 38 {
		t.Errorf("Assignment.Pos() = %d, want 38", letC.Init.Pos())
	}
	if letC.DeclName().Name != "c" || letC.Kind() != DeclLet {
		t.Errorf("unexpected declaration %s %s", letC.Kind(), letC.DeclName().Name)
	}
}

func TestDeclarations(t *testing.T) {
	var g IDGen
	mod := buildSample(&g)
	mod.Statements = append(mod.Statements, &ExprStmt{X: &IdentExpr{Ident: g.NewIdent(50, "a")}})

	decls := mod.Declarations()
	if len(decls) != 3 {
		t.Fatalf("Declarations() returned %d entries, want 3", len(decls))
	}
	for i, name := range []string{"a", "b", "c"} {
		if decls[i].DeclName().Name != name {
			t.Errorf("decls[%d] = %s, want %s", i, decls[i].DeclName().Name, name)
		}
	}
}

func TestDeclKindString(t *testing.T) {
	tests := []struct {
		kind DeclKind
		want string
	}{
		{DeclLet, "let"},
		{DeclTypeAlias, "type"},
		{DeclKind(7), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("DeclKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestScope(t *testing.T) {
	var g IDGen
	scope := NewScope()

	alias := &TypeAlias{Name: g.NewIdent(5, "x"), Aliased: g.NewIdent(9, "number")}
	if existing := scope.Insert(NewSymbol(alias)); existing != nil {
		t.Fatal("Insert into empty scope returned an existing symbol")
	}

	sym := scope.Lookup("x")
	if sym == nil {
		t.Fatal("Lookup(x) = nil")
	}
	if sym.HasValueDecl() {
		t.Error("type alias must not be a value declaration")
	}

	let := &LetDecl{Name: g.NewIdent(20, "x"), Init: &NumberLit{Literal: "1", Value: 1}}
	if existing := scope.Insert(NewSymbol(let)); existing != sym {
		t.Fatal("Insert of existing name should return the existing symbol")
	}
	sym.Add(let)

	if len(sym.Decls) != 2 {
		t.Fatalf("len(Decls) = %d, want 2", len(sym.Decls))
	}
	if sym.ValueDecl != let {
		t.Error("let declaration should become the value declaration")
	}
	if sym.Lookup(DeclTypeAlias) != alias || sym.Lookup(DeclLet) != let {
		t.Error("Symbol.Lookup returned the wrong declaration")
	}

	scope.Insert(NewSymbol(&LetDecl{Name: g.NewIdent(30, "a"), Init: &NumberLit{Literal: "2", Value: 2}}))
	if scope.Len() != 2 {
		t.Errorf("Len() = %d, want 2", scope.Len())
	}

	var names []string
	for _, s := range scope.Symbols() {
		names = append(names, s.Name)
	}
	if strings.Join(names, ",") != "x,a" {
		t.Errorf("Symbols() order = %v, want [x a]", names)
	}
	if scope.Lookup("missing") != nil {
		t.Error("Lookup of unknown name should return nil")
	}
}

func TestNodeCountVisitor(t *testing.T) {
	var g IDGen
	mod := buildSample(&g)

	counter := NewNodeCountVisitor()
	total := counter.CountModule(mod)

	// 3 DeclStmt, 3 LetDecl, 2 NumberLit, 1 Assignment, 1 IdentExpr
	if total != 10 {
		t.Errorf("total = %d, want 10 (%v)", total, counter.Counts)
	}
	if counter.Counts["Assignment"] != 1 || counter.Counts["IdentExpr"] != 1 {
		t.Errorf("unexpected counts %v", counter.Counts)
	}
}

func TestWalkingVisitorLongChain(t *testing.T) {
	var g IDGen

	// x0 = x1 = ... = x9999 = 1
	var value Expression = &NumberLit{Literal: "1", Value: 1}
	for i := 0; i < 10000; i++ {
		value = &Assignment{Target: g.NewIdent(Pos(i), "x"), Value: value}
	}

	counter := NewNodeCountVisitor()
	NewWalkingVisitor(counter).Walk(value)

	if counter.Counts["Assignment"] != 10000 || counter.Counts["NumberLit"] != 1 {
		t.Errorf("unexpected counts %v", counter.Counts)
	}
}

func TestDump(t *testing.T) {
	var g IDGen
	mod := buildSample(&g)

	got := Dump(mod.Statements[2])
	want := "DeclStmt @30\n" +
		"  Let c #3 @30\n" +
		"    Assign a #4 @38\n" +
		"      Ident b #5 @42\n"
	if got != want {
		t.Errorf("Dump() =\n%s\nwant\n%s", got, want)
	}
}

func TestFprintWithScope(t *testing.T) {
	var g IDGen
	mod := buildSample(&g)

	mod.Scope = NewScope()
	for _, decl := range mod.Declarations() {
		mod.Scope.Insert(NewSymbol(decl))
	}

	var buf bytes.Buffer
	if err := Fprint(&buf, mod); err != nil {
		t.Fatalf("Fprint: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Let b #1: number @11\n") {
		t.Errorf("missing typed let line in:\n%s", out)
	}
	if !strings.Contains(out, "symbols:\n  a [let] value=true\n") {
		t.Errorf("missing symbol table in:\n%s", out)
	}
}
