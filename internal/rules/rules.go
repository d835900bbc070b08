// Package rules holds the habit consistency checks. Every create and update
// runs the same fixed pipeline; the first violated rule is reported. The
// checks are pure: callers resolve the linked habit's pleasure flag into the
// candidate before validating.
package rules

// Candidate is the full field set of a habit about to be persisted. For
// partial updates it is the existing record merged with the patch.
type Candidate struct {
	IsPleasure    bool
	Periodicity   int
	ExecutionTime int
	Reward        string
	LinkedHabitID *int
	// LinkedIsPleasure is the resolved pleasure flag of the linked habit.
	// Only meaningful when LinkedHabitID is set.
	LinkedIsPleasure bool
}

// Patch carries only the fields present in a partial update. Nil means the
// field was not sent.
type Patch struct {
	PlaceID       *int
	ActionID      *int
	IsPleasure    *bool
	Periodicity   *int
	Reward        *string
	LinkedHabitID *int
	ExecutionTime *int
	IsPublic      *bool
}

// Violation is a rejected rule. It surfaces to the client as a 400, never as
// an internal error.
type Violation struct {
	Msg string
}

func (v *Violation) Error() string { return v.Msg }

func reject(msg string) error { return &Violation{Msg: msg} }

// Rule is a single consistency check over a candidate.
type Rule func(Candidate) error

// pipeline runs in declared order; the order of the first two rules is
// load-bearing for the diagnostic a client sees when both would fire.
var pipeline = []Rule{
	checkRewardOrLink,
	checkNotBoth,
	checkExecutionTime,
	checkLinkedIsPleasure,
	checkPleasureHasNeither,
	checkPeriodicity,
}

// Validate runs the full pipeline and returns the first violation.
func Validate(c Candidate) error {
	for _, rule := range pipeline {
		if err := rule(c); err != nil {
			return err
		}
	}
	return nil
}

func checkRewardOrLink(c Candidate) error {
	if !c.IsPleasure && c.Reward == "" && c.LinkedHabitID == nil {
		return reject("habit must have a reward or a linked pleasant habit")
	}
	return nil
}

func checkNotBoth(c Candidate) error {
	if !c.IsPleasure && c.Reward != "" && c.LinkedHabitID != nil {
		return reject("habit cannot have both a reward and a linked pleasant habit at once")
	}
	return nil
}

func checkExecutionTime(c Candidate) error {
	if c.ExecutionTime > 120 {
		return reject("execution time must not exceed 120 seconds")
	}
	return nil
}

func checkLinkedIsPleasure(c Candidate) error {
	if c.LinkedHabitID != nil && !c.LinkedIsPleasure {
		return reject("only a habit marked as pleasant can be linked")
	}
	return nil
}

func checkPleasureHasNeither(c Candidate) error {
	if c.IsPleasure && (c.Reward != "" || c.LinkedHabitID != nil) {
		return reject("a pleasant habit cannot have a reward or a linked habit")
	}
	return nil
}

func checkPeriodicity(c Candidate) error {
	if c.Periodicity > 7 {
		return reject("habit cannot be performed less often than once in 7 days")
	}
	return nil
}

// ValidatePatch applies the partial-update checks that depend on which fields
// the patch actually carries. It composes with Validate: callers merge the
// patch into the existing record and run Validate afterwards.
func ValidatePatch(existing Candidate, patch Patch) error {
	if patch.IsPleasure != nil && *patch.IsPleasure {
		if existing.Reward != "" || existing.LinkedHabitID != nil {
			return reject("habit already has a reward or a linked habit and cannot be marked as pleasant")
		}
	}
	if existing.Reward != "" && patch.LinkedHabitID != nil {
		return reject("habit has a reward and cannot take a linked habit")
	}
	if existing.LinkedHabitID != nil && patch.Reward != nil && *patch.Reward != "" {
		return reject("habit has a linked habit and cannot take a reward")
	}
	return nil
}
