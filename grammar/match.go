package grammar

import "github.com/katalvlaran/lvlgen/statemachine"

// Matches runs the rule pattern over w without the coupling gate.
func Matches(r *Rule, w Window) Outcome {
	return match(r, w, false)
}

// MatchesCoupled runs the rule pattern over w with the coupling gate on:
// an element whose tight flag disagrees with the branch coupling is
// skipped, so such a window is never Accepted.
func MatchesCoupled(r *Rule, w Window) Outcome {
	return match(r, w, true)
}

func match(r *Rule, w Window, coupled bool) Outcome {
	if r == nil || r.Pattern == nil {
		return Rejected
	}
	opts := []statemachine.Option{statemachine.WithMaxSteps(statemachine.Unlimited)}
	if coupled {
		opts = append(opts, statemachine.WithCouplingGate())
	}
	res, err := statemachine.Run(r.Pattern, w, opts...)
	if err != nil {
		return Rejected
	}
	switch res.Completion {
	case statemachine.Accepted:
		return Accepted
	case statemachine.Rejected:
		return Rejected
	}
	return InProgress
}

// Set is an ordered rule catalog. Order matters: candidates are reported
// in insertion order, which keeps random selection reproducible.
type Set struct {
	rules []*Rule
}

// NewSet returns a Set holding rules in the given order. Nil rules are
// dropped.
func NewSet(rules ...*Rule) *Set {
	s := &Set{}
	for _, r := range rules {
		s.Add(r)
	}
	return s
}

// Add appends r.
func (s *Set) Add(r *Rule) {
	if r != nil {
		s.rules = append(s.rules, r)
	}
}

// Len returns the number of rules.
func (s *Set) Len() int { return len(s.rules) }

// Rules returns the rules in order. The slice is a copy; rules are shared.
func (s *Set) Rules() []*Rule {
	return append([]*Rule(nil), s.rules...)
}

// Candidates returns every rule accepting w. Only rules whose window
// arity matches len(w) are tested. When coupled is set the coupling gate
// is enabled.
func (s *Set) Candidates(w Window, coupled bool) []*Rule {
	var out []*Rule
	pair := len(w) == 2
	for _, r := range s.rules {
		if r.Pair != pair {
			continue
		}
		if match(r, w, coupled) == Accepted {
			out = append(out, r)
		}
	}
	return out
}
