package deepu

import "fmt"

// Environment is the single flat variable namespace of one run.
type Environment struct {
	values map[string]Value
}

func NewEnvironment() *Environment {
	return &Environment{
		values: make(map[string]Value),
	}
}

// Define binds name, overwriting any previous binding.
func (e *Environment) Define(name string, v Value) {
	e.values[name] = v
}

// Assign overwrites an existing binding and fails if there is none.
func (e *Environment) Assign(name string, v Value) error {
	if _, ok := e.values[name]; !ok {
		return fmt.Errorf("%w '%s'", ErrUndefinedVariable, name)
	}

	e.values[name] = v
	return nil
}

func (e *Environment) Get(name string) (Value, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}

	return nil, fmt.Errorf("%w '%s'", ErrUndefinedVariable, name)
}

// Snapshot returns a copy of every binding.
func (e *Environment) Snapshot() map[string]Value {
	snap := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		snap[k] = v
	}

	return snap
}
