package target

// FindConflict is the pure overlap check behind the core invariant: for any
// two targets sharing actor and metric, their date windows must not
// intersect. It returns the first existing target whose closed window
// overlaps the candidate's, skipping the candidate itself (updates) and
// targets without a complete window. A nil result means the candidate
// honors the invariant against the given set.
func FindConflict(candidate *Target, existing []Target) *Target {
	cw, ok := candidate.Window()
	if !ok {
		return nil
	}

	for i := range existing {
		other := &existing[i]
		if other.ID == candidate.ID {
			continue
		}
		if !other.Actor.Equals(candidate.Actor) || other.Metric != candidate.Metric {
			continue
		}
		ow, ok := other.Window()
		if !ok {
			continue
		}
		if cw.Overlaps(ow) {
			return other
		}
	}
	return nil
}

// HasConflict reports whether the candidate violates the overlap invariant
// against the given set
func HasConflict(candidate *Target, existing []Target) bool {
	return FindConflict(candidate, existing) != nil
}
