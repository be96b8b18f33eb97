package types

// Subst is a finite mapping from type-variable name to type (spec.md
// §3.5). Grounded on original_source/src/middle/typecheck/scheme.rs's
// `type Subst = FastMap<String, Ty>` plus `apply_subst`/`unify`.
type Subst map[string]Type

// NewSubst builds a substitution from parallel parameter-name/argument
// slices, as used when a call site supplies explicit <generics> (spec.md
// §4.3.6 step 3).
func NewSubst(params []string, args []Type) Subst {
	s := make(Subst, len(params))
	for i, p := range params {
		if i < len(args) {
			s[p] = args[i]
		}
	}
	return s
}

// Apply replaces free variables in t according to s. Variables with no
// entry in s are left as-is.
func Apply(t Type, s Subst) Type {
	switch t := t.(type) {
	case Var:
		if repl, ok := s[t.Name]; ok {
			return repl
		}
		return t
	case App:
		if len(t.Args) == 0 {
			return t
		}
		newArgs := make([]Type, len(t.Args))
		for i, a := range t.Args {
			newArgs[i] = Apply(a, s)
		}
		return App{Name: t.Name, Args: newArgs}
	default:
		return t
	}
}

// ApplyAll applies s to every type in ts, returning a new slice.
func ApplyAll(ts []Type, s Subst) []Type {
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = Apply(t, s)
	}
	return out
}

func occurs(name string, t Type) bool {
	switch t := t.(type) {
	case Var:
		return t.Name == name
	case App:
		for _, a := range t.Args {
			if occurs(name, a) {
				return true
			}
		}
	}
	return false
}

// Unify extends s so that Apply(a, s) structurally equals Apply(b, s), or
// returns a non-nil error on structural mismatch. It performs an
// occurs-check but — per spec.md §3.5 — *permits* binding a variable to a
// type that itself contains other free variables, since trait-method
// calls whose result type mentions the caller's own parameters require
// exactly that.
func Unify(a, b Type, s Subst) error {
	la := Apply(a, s)
	lb := Apply(b, s)

	if Equal(la, lb) {
		return nil
	}

	if v, ok := la.(Var); ok {
		if occurs(v.Name, lb) {
			return &UnifyError{A: la, B: lb, Reason: "occurs check failed"}
		}
		s[v.Name] = lb
		return nil
	}
	if v, ok := lb.(Var); ok {
		if occurs(v.Name, la) {
			return &UnifyError{A: la, B: lb, Reason: "occurs check failed"}
		}
		s[v.Name] = la
		return nil
	}

	appA, okA := la.(App)
	appB, okB := lb.(App)
	if okA && okB {
		if appA.Name != appB.Name || len(appA.Args) != len(appB.Args) {
			return &UnifyError{A: la, B: lb, Reason: "type constructor mismatch"}
		}
		for i := range appA.Args {
			if err := Unify(appA.Args[i], appB.Args[i], s); err != nil {
				return err
			}
		}
		return nil
	}

	return &UnifyError{A: la, B: lb, Reason: "type mismatch"}
}

// UnifyError reports a structural mismatch from Unify.
type UnifyError struct {
	A, B   Type
	Reason string
}

func (e *UnifyError) Error() string {
	return e.Reason + ": `" + e.A.String() + "` vs `" + e.B.String() + "`"
}
