package runtime

import (
	"github.com/noobforanonymous/keikaku-programming-language/internal/kerr"
	"github.com/noobforanonymous/keikaku-programming-language/internal/token"
)

// binding is one entry of an Environment's insertion-ordered scope.
type binding struct {
	name       string
	value      Value
	isOverride bool
}

// Environment is a node in the linear chain of lexical scopes. Lookups are
// case-sensitive and compare names directly.
type Environment struct {
	order  []string
	store  map[string]*binding
	parent *Environment
	global *Environment
}

// NewGlobal creates the root environment.
func NewGlobal() *Environment {
	e := &Environment{store: make(map[string]*binding)}
	e.global = e
	return e
}

// NewEnclosed creates a child scope of parent.
func NewEnclosed(parent *Environment) *Environment {
	return &Environment{
		store:  make(map[string]*binding),
		parent: parent,
		global: parent.global,
	}
}

// NewIsolated creates a scope with no parent, used for an instance's field
// environment: field lookups never fall through to lexical scope.
func NewIsolated() *Environment {
	e := &Environment{store: make(map[string]*binding)}
	e.global = e
	return e
}

// Global returns the enclosing global scope.
func (e *Environment) Global() *Environment { return e.global }

// Parent returns the immediate parent scope, or nil at the root.
func (e *Environment) Parent() *Environment { return e.parent }

// Define always binds name in the current scope, shadowing any outer
// binding of the same name.
func (e *Environment) Define(name string, v Value) {
	if b, ok := e.store[name]; ok {
		b.value = v
		return
	}
	e.order = append(e.order, name)
	e.store[name] = &binding{name: name, value: v}
}

// Assign mutates the nearest existing binding in the scope chain, or
// defines it locally if none exists.
func (e *Environment) Assign(name string, v Value) {
	for scope := e; scope != nil; scope = scope.parent {
		if b, ok := scope.store[name]; ok {
			b.value = v
			return
		}
	}
	e.Define(name, v)
}

// Get walks the scope chain for name.
func (e *Environment) Get(name string) (Value, bool) {
	for scope := e; scope != nil; scope = scope.parent {
		if b, ok := scope.store[name]; ok {
			return b.value, true
		}
	}
	return nil, false
}

// GetErr is Get, returning an UndefinedName RuntimeError on miss.
func (e *Environment) GetErr(name string) (Value, *kerr.RuntimeError) {
	if v, ok := e.Get(name); ok {
		return v, nil
	}
	return nil, kerr.Newf(kerr.UndefinedName, token.Position{}, "undefined name: %s", name)
}

// ForceGlobal writes into the root scope and marks the binding as override,
// regardless of which scope it's called from.
func (e *Environment) ForceGlobal(name string, v Value) {
	g := e.global
	if b, ok := g.store[name]; ok {
		b.value = v
		b.isOverride = true
		return
	}
	g.order = append(g.order, name)
	g.store[name] = &binding{name: name, value: v, isOverride: true}
}

// IsOverride reports whether name, as seen from this scope, was bound via
// ForceGlobal.
func (e *Environment) IsOverride(name string) bool {
	for scope := e; scope != nil; scope = scope.parent {
		if b, ok := scope.store[name]; ok {
			return b.isOverride
		}
	}
	return false
}
