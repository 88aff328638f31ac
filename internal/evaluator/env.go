package evaluator

import "sort"

// Store is the view of variable storage the evaluator works against.
type Store interface {
	Get(name string) (Value, bool)
	Set(name string, v Value)
	// KindOf reports the kind a reassignment of name must produce.
	KindOf(name string) (Kind, bool)
}

// Env is the single flat namespace of a run.
type Env struct {
	store map[string]Value
}

func NewEnv() *Env { return &Env{store: map[string]Value{}} }

func (e *Env) Get(name string) (Value, bool) {
	v, ok := e.store[name]
	return v, ok
}

func (e *Env) Set(name string, v Value) { e.store[name] = v }

func (e *Env) KindOf(name string) (Kind, bool) {
	v, ok := e.store[name]
	if !ok {
		return 0, false
	}
	return inferKind(v), true
}

// Names returns the bound names in ascending order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.store))
	for name := range e.store {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Env) Len() int { return len(e.store) }
