package testcase

// SetSummary returns an UpdateSetter that replaces the summary.
func SetSummary(summary string) UpdateSetter {
	return func(tc *TestCase) error {
		if summary == "" {
			return ErrInvalidSummary
		}
		tc.Summary = summary
		return nil
	}
}

// SetPriority returns an UpdateSetter that replaces the priority.
func SetPriority(p Priority) UpdateSetter {
	return func(tc *TestCase) error {
		if !p.Valid() {
			return ErrInvalidPriority
		}
		tc.Priority = p
		return nil
	}
}

// SetType returns an UpdateSetter that replaces the type.
func SetType(t Type) UpdateSetter {
	return func(tc *TestCase) error {
		if !t.Valid() {
			return ErrInvalidType
		}
		tc.Type = t
		return nil
	}
}

// SetReviewStatus returns an UpdateSetter that replaces the review status.
func SetReviewStatus(r ReviewStatus) UpdateSetter {
	return func(tc *TestCase) error {
		if !r.Valid() {
			return ErrInvalidReviewStatus
		}
		tc.ReviewStatus = r
		return nil
	}
}

// SetProgress returns an UpdateSetter that replaces the progress.
func SetProgress(p Progress) UpdateSetter {
	return func(tc *TestCase) error {
		if !p.Valid() {
			return ErrInvalidProgress
		}
		tc.Progress = p
		return nil
	}
}

// SetLabels returns an UpdateSetter that replaces the label list. An empty
// list is a valid replacement; callers distinguish "absent" from "empty"
// before building the setter.
func SetLabels(labels Labels) UpdateSetter {
	return func(tc *TestCase) error {
		if labels == nil {
			labels = Labels{}
		}
		tc.Labels = labels
		return nil
	}
}
