package check

import "github.com/pawlang-project/paw/internal/types"

// scope is a chain of lexical variable-name -> type bindings.
type scope struct {
	vars   map[string]types.Type
	consts map[string]bool
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: map[string]types.Type{}, consts: map[string]bool{}, parent: parent}
}

func (s *scope) define(name string, t types.Type, isConst bool) {
	s.vars[name] = t
	s.consts[name] = isConst
}

func (s *scope) lookup(name string) (types.Type, bool) {
	for c := s; c != nil; c = c.parent {
		if t, ok := c.vars[name]; ok {
			return t, true
		}
	}
	return nil, false
}

func (s *scope) isConst(name string) bool {
	for c := s; c != nil; c = c.parent {
		if _, ok := c.vars[name]; ok {
			return c.consts[name]
		}
	}
	return false
}
