package core

import "fmt"

type ErrorKind int

const (
	TypeError ErrorKind = iota
	NameError
)

func (k ErrorKind) String() string {
	if k == NameError {
		return "name error"
	}
	return "type error"
}

// RuntimeError aborts the current Interpret call. Token locates the
// operator or name that failed.
type RuntimeError struct {
	Kind   ErrorKind
	Token  Token
	Reason string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("Runtime error [line %d]: %s", e.Token.Line, e.Reason)
}

func undefinedVariable(name Token) *RuntimeError {
	return &RuntimeError{
		Kind:   NameError,
		Token:  name,
		Reason: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme),
	}
}

// Environment is one lexical scope. Lookups and assignments walk the
// enclosing chain; definitions always land in the local scope.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

func NewEnclosedEnvironment(enclosing *Environment) *Environment {
	env := NewEnvironment()
	env.enclosing = enclosing
	return env
}

func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// Define binds name in this scope, shadowing any outer binding.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

func (e *Environment) Get(name Token) (Value, error) {
	for env := e; env != nil; env = env.enclosing {
		if value, ok := env.values[name.Lexeme]; ok {
			return value, nil
		}
	}
	return nil, undefinedVariable(name)
}

// Assign updates the nearest existing binding of name. It never creates
// one.
func (e *Environment) Assign(name Token, value Value) (Value, error) {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = value
			return value, nil
		}
	}
	return nil, undefinedVariable(name)
}

// Lookup is Get by plain name, for hosts inspecting state.
func (e *Environment) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.enclosing {
		if value, ok := env.values[name]; ok {
			return value, true
		}
	}
	return nil, false
}
