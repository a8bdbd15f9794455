package statemachine

import "fmt"

// Run feeds input to m and reports where and how it stopped.
//
// Behavior per iteration, starting at the configured state and index:
//  1. If the state terminates immediately or the index is outside input,
//     stop with the state's Completion.
//  2. If the step budget is zero, stop with OutOfSteps.
//  3. Try branches in order. A firing reverse branch without destination
//     stops with Rejected; any other firing branch moves to its
//     destination and consumes one input and one step.
//  4. If nothing fired and the state loops by default, skip the input,
//     consume one step and count a null branch.
//  5. Otherwise stop with the state's Completion.
//
// Every iteration advances the index, so the loop ends after at most
// len(input) iterations even with Unlimited steps.
//
// Errors: ErrNilMachine, ErrStateNotFound, ErrOptionViolation.
func Run(m *Machine, input []Input, opts ...Option) (Result, error) {
	if m == nil {
		return Result{}, ErrNilMachine
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Result{}, o.err
	}
	cur := m.start
	if o.Start != NoState {
		cur = o.Start
	}
	if cur < 0 || int(cur) >= len(m.states) {
		return Result{}, fmt.Errorf("%w: start state %d", ErrStateNotFound, cur)
	}

	idx, steps, nulls := o.StartIndex, o.MaxSteps, 0
	for {
		st := &m.states[cur]
		if st.TerminateImmediately || idx >= len(input) {
			return Result{Final: cur, Index: idx, Completion: st.Completion, NullBranches: nulls}, nil
		}
		if steps == 0 {
			return Result{Final: cur, Index: idx, Completion: OutOfSteps, NullBranches: nulls}, nil
		}

		fired := false
		for i := range st.Branches {
			br := &st.Branches[i]
			if !br.fires(input[idx], o.CouplingGate) {
				continue
			}
			if br.Dest == NoState {
				// reverse branch with no destination: reject by branch
				return Result{Final: cur, Index: idx, Completion: Rejected, NullBranches: nulls}, nil
			}
			cur = br.Dest
			fired = true
			break
		}
		if !fired {
			if !st.LoopByDefault {
				return Result{Final: cur, Index: idx, Completion: st.Completion, NullBranches: nulls}, nil
			}
			nulls++
			o.OnNullBranch(cur, idx)
		}
		idx++
		if steps > 0 {
			steps--
		}
	}
}
