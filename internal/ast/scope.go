package ast

// Symbol is the set of top-level declarations that share one name.
// Decls is never empty once the symbol exists.
type Symbol struct {
	Name  string
	Decls []Declaration
	// ValueDecl is the most recent let declaration, nil if none was seen
	ValueDecl *LetDecl
}

// NewSymbol creates a symbol holding exactly decl.
func NewSymbol(decl Declaration) *Symbol {
	sym := &Symbol{Name: decl.DeclName().Name}
	sym.Add(decl)
	return sym
}

// Add attaches decl to the symbol. A let declaration becomes the value
// declaration.
func (s *Symbol) Add(decl Declaration) {
	s.Decls = append(s.Decls, decl)
	if let, ok := decl.(*LetDecl); ok {
		s.ValueDecl = let
	}
}

// HasValueDecl reports whether a value-producing declaration has been seen.
func (s *Symbol) HasValueDecl() bool {
	return s.ValueDecl != nil
}

// Lookup returns the first declaration of the given kind, or nil.
func (s *Symbol) Lookup(kind DeclKind) Declaration {
	for _, d := range s.Decls {
		if d.Kind() == kind {
			return d
		}
	}
	return nil
}

// Scope maps names to symbols and remembers first-declaration order.
type Scope struct {
	symbols map[string]*Symbol
	order   []string
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{symbols: make(map[string]*Symbol)}
}

// Lookup returns the symbol for name, or nil.
func (s *Scope) Lookup(name string) *Symbol {
	return s.symbols[name]
}

// Insert adds sym unless a symbol with the same name exists, in which case
// the existing symbol is returned and nothing changes.
func (s *Scope) Insert(sym *Symbol) *Symbol {
	if existing, ok := s.symbols[sym.Name]; ok {
		return existing
	}
	s.symbols[sym.Name] = sym
	s.order = append(s.order, sym.Name)
	return nil
}

// Len returns the number of symbols.
func (s *Scope) Len() int {
	return len(s.order)
}

// Symbols returns all symbols in the order their names were first declared.
func (s *Scope) Symbols() []*Symbol {
	out := make([]*Symbol, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.symbols[name])
	}
	return out
}
