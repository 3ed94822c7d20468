package nfa

// Reverse builds an NFA that reads input right to left and accepts the
// reversal of every string the forward NFA accepts.
//
// In a reverse NFA:
//   - Every character transition r -> s becomes s -> r with the same matcher
//     and priority
//   - Each state that could enter a final state gets an initial transition
//   - Each state entered by an initial transition gets an unanchored final
//     transition
//
// State IDs are preserved. Capture-group updates and end-of-input anchoring
// are dropped: group positions are only meaningful in the forward direction.
//
// Example:
//
//	Forward NFA for "ab":
//	  start -> q0 -a-> q1 -b-> q2 -> accept
//
//	Reverse NFA:
//	  start -> q2 -b-> q1 -a-> q0 -> accept
func Reverse(forward *NFA) *NFA {
	b := NewBuilderWithCapacity(forward.NumStates())
	b.setForward(!forward.forward)
	b.SetCaptureCount(forward.captureCount)

	for _, s := range forward.states {
		if s.IsFinal() {
			continue
		}
		if id := b.AddState(); id != s.id {
			panic("nfa: reverse state numbering diverged")
		}
	}

	for _, t := range forward.transitions {
		switch {
		case t.IsInitial():
			b.AddFinalTransition(t.target, false, WithPriority(t.priority))
		case forward.IsFinal(t.target):
			b.AddInitial(t.source, WithPriority(t.priority))
		default:
			b.AddTransition(t.target, t.source, t.matcher, WithPriority(t.priority))
		}
	}

	n, err := b.Build()
	if err != nil {
		// A valid forward NFA always reverses into a valid NFA.
		panic("nfa: reverse of a valid NFA failed: " + err.Error())
	}
	return n
}
