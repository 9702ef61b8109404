package calculation

import "fmt"

// PlanError wraps a calculation failure with the operation that produced
// it. All validation failures are raised at the entry of a calculation;
// no partial results are returned.
type PlanError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *PlanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

func (e *PlanError) Unwrap() error {
	return e.Cause
}

// InvalidGoalError reports a non-positive goal amount or a target date
// that is not strictly in the future.
type InvalidGoalError struct {
	Field   string
	Message string
}

func (e *InvalidGoalError) Error() string {
	return fmt.Sprintf("invalid goal: %s: %s", e.Field, e.Message)
}

// InvalidRetirementInputError reports a non-positive expense, year, or
// retirement-length input, or an out-of-bounds rate or age.
type InvalidRetirementInputError struct {
	Field   string
	Message string
}

func (e *InvalidRetirementInputError) Error() string {
	return fmt.Sprintf("invalid retirement input: %s: %s", e.Field, e.Message)
}

// InvalidIncomeError reports missing or non-positive gross income.
type InvalidIncomeError struct {
	Field   string
	Message string
}

func (e *InvalidIncomeError) Error() string {
	return fmt.Sprintf("invalid income input: %s: %s", e.Field, e.Message)
}

// UnknownCrisisTypeError reports an unrecognized crisis discriminator.
type UnknownCrisisTypeError struct {
	Type string
}

func (e *UnknownCrisisTypeError) Error() string {
	return fmt.Sprintf("unknown crisis type: %q", e.Type)
}

// UnknownLifeEventError reports an unrecognized life event discriminator.
type UnknownLifeEventError struct {
	Type string
}

func (e *UnknownLifeEventError) Error() string {
	return fmt.Sprintf("unknown life event type: %q", e.Type)
}
