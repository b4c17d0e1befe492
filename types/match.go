package types

import "fmt"

// Bindings is a transactional map from generic variable name to the
// concrete type it has been resolved to. Variant matching needs to try a
// member, and throw its tentative bindings away if the member doesn't
// match — Clone/Merge give Variant a cheap copy-on-write scope to do that
// in.
type Bindings struct {
	m map[string]Type
}

// NewBindings returns an empty, ready-to-use Bindings.
func NewBindings() *Bindings {
	return &Bindings{m: map[string]Type{}}
}

// Get returns the type bound to name, if any.
func (b *Bindings) Get(name string) (Type, bool) {
	if b == nil {
		return nil, false
	}
	t, ok := b.m[name]
	return t, ok
}

// Bind records name ↦ t.
func (b *Bindings) Bind(name string, t Type) {
	b.m[name] = t
}

// Clone returns an independent copy of b, so speculative matches can bind
// freely and be discarded without side effects.
func (b *Bindings) Clone() *Bindings {
	cp := NewBindings()
	for k, v := range b.m {
		cp.m[k] = v
	}
	return cp
}

// Merge copies every binding in other into b, overwriting existing entries.
// Used once a speculative match (Clone'd Bindings) has succeeded.
func (b *Bindings) Merge(other *Bindings) {
	for k, v := range other.m {
		b.m[k] = v
	}
}

// MatchTypeError reports whether actual is assignable to expected, given an
// optional set of generic bindings. It returns nil if the match succeeds,
// or a diagnostic error otherwise.
func MatchTypeError(expected, actual Type, b *Bindings) error {
	// Rule 1: an operator call used as a value stands for its result.
	if l, ok := actual.(Lambda); ok {
		actual = l.Result
	}

	// Rule 2: generic resolution, only when a typenameMap was supplied.
	if b != nil {
		if tn, ok := expected.(Typename); ok {
			bound, isBound := b.Get(tn.Ident)
			if isBound && IsGeneric(bound) {
				// leave as is.
			} else if !isBound && !IsGeneric(actual) {
				b.Bind(tn.Ident, actual)
			}
			// the bind (or lack of one) covers the match.
			return nil
		}
		if tn, ok := actual.(Typename); ok {
			if bound, isBound := b.Get(tn.Ident); isBound {
				actual = bound
			} else if !IsGeneric(expected) {
				b.Bind(tn.Ident, expected)
				actual = expected
			}
		}
	}

	// Value is the top type: matches every primitive except Interpolation,
	// plus Vector<Value>.
	if expected == Type(Value) {
		if valueMatches(actual) {
			return nil
		}
		return mismatch(expected, actual)
	}

	switch exp := expected.(type) {
	case Primitive:
		act, ok := actual.(Primitive)
		if !ok || act != exp {
			return mismatch(expected, actual)
		}
		return nil

	case Vector:
		act, ok := actual.(Vector)
		if !ok {
			return mismatch(expected, actual)
		}
		if err := MatchTypeError(exp.Of, act.Of, b); err != nil {
			return wrapMismatch(expected, actual, err)
		}
		return nil

	case Array:
		switch act := actual.(type) {
		case Array:
			if act.N != exp.N {
				return mismatch(expected, actual)
			}
			if err := MatchTypeError(exp.Of, act.Of, b); err != nil {
				return wrapMismatch(expected, actual, err)
			}
			return nil
		default:
			return mismatch(expected, actual)
		}

	case AnyArray:
		switch act := actual.(type) {
		case Array:
			if err := MatchTypeError(exp.Of, act.Of, b); err != nil {
				return wrapMismatch(expected, actual, err)
			}
			return nil
		case AnyArray:
			if err := MatchTypeError(exp.Of, act.Of, b); err != nil {
				return wrapMismatch(expected, actual, err)
			}
			return nil
		default:
			return mismatch(expected, actual)
		}

	case Variant:
		if act, ok := actual.(Variant); ok {
			// every actual-member must match expected.
			for _, m := range act.Members {
				if err := MatchTypeError(expected, m, b); err != nil {
					return err
				}
			}
			return nil
		}
		var lastErr error
		for _, member := range exp.Members {
			var trial *Bindings
			if b != nil {
				trial = b.Clone()
			}
			if err := MatchTypeError(member, actual, trial); err == nil {
				if b != nil {
					b.Merge(trial)
				}
				return nil
			} else {
				lastErr = err
			}
		}
		return wrapMismatch(expected, actual, lastErr)

	default:
		return mismatch(expected, actual)
	}
}

func mismatch(expected, actual Type) error {
	return fmt.Errorf("Expected %s but found %s instead.", expected.Name(), actual.Name())
}

func wrapMismatch(expected, actual Type, inner error) error {
	if inner == nil {
		return mismatch(expected, actual)
	}
	return fmt.Errorf("%s (%s)", mismatch(expected, actual), inner)
}
