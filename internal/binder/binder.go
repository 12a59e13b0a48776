// Package binder builds the top-level symbol table of a parsed module and
// rejects illegal redeclarations.
//
// A name may carry at most one declaration of each kind, so a type alias
// and a let binding can share a name while two lets cannot. Binding stops
// at the first conflict.
package binder

import (
	"fmt"

	"github.com/orizon-lang/minilang/internal/ast"
	mlerrors "github.com/orizon-lang/minilang/internal/errors"
)

// RedeclarationError reports a second declaration of the same kind.
type RedeclarationError struct {
	Name  string
	Kind  ast.DeclKind
	Pos   ast.Pos // the rejected declaration
	First ast.Pos // the declaration it conflicts with
}

func (e *RedeclarationError) Error() string {
	return fmt.Sprintf("cannot redeclare %s; first declared at %d", e.Name, e.First)
}

// ErrorCode returns mlerrors.CodeCannotRedeclare.
func (e *RedeclarationError) ErrorCode() mlerrors.Code {
	return mlerrors.CodeCannotRedeclare
}

// Is lets errors.Is match the error against its code.
func (e *RedeclarationError) Is(target error) bool {
	return target == mlerrors.CodeCannotRedeclare
}

// Binder performs a single pass over a module's declarations.
type Binder struct {
	scope *ast.Scope
}

// New creates a binder with an empty scope.
func New() *Binder {
	return &Binder{scope: ast.NewScope()}
}

// Scope returns the symbols bound so far.
func (b *Binder) Scope() *ast.Scope {
	return b.scope
}

// Bind binds mod with a fresh binder.
func Bind(mod *ast.Module) error {
	return New().BindModule(mod)
}

// BindModule visits every declaration statement in program order and
// attaches the resulting scope to mod, also when binding fails part way.
func (b *Binder) BindModule(mod *ast.Module) error {
	defer func() { mod.Scope = b.scope }()

	for _, decl := range mod.Declarations() {
		if err := b.declare(decl); err != nil {
			return err
		}
	}

	return nil
}

func (b *Binder) declare(decl ast.Declaration) error {
	existing := b.scope.Lookup(decl.DeclName().Name)
	if existing == nil {
		b.scope.Insert(ast.NewSymbol(decl))
		return nil
	}

	if first := existing.Lookup(decl.Kind()); first != nil {
		return &RedeclarationError{
			Name:  existing.Name,
			Kind:  decl.Kind(),
			Pos:   decl.Pos(),
			First: first.Pos(),
		}
	}

	existing.Add(decl)
	return nil
}
