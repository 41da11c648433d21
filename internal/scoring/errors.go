package scoring

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a criteria/weights integrity defect. It is never
// caused by user input: criteria and profiles are fixed at build or load time.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "scoring configuration: " + e.Reason
}

func configErrorf(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// UnknownContextError is returned when a context label does not name any
// configured weight profile.
type UnknownContextError struct {
	Context string
	Known   []string
}

func (e *UnknownContextError) Error() string {
	return fmt.Sprintf("unknown context %q (known: %s)", e.Context, strings.Join(e.Known, ", "))
}

// NonFiniteScoreError is returned when a weighted score or a total overflows
// to an infinity or is not a number. Criterion is empty when the total is
// at fault.
type NonFiniteScoreError struct {
	Supplier  string
	Column    int
	Criterion string
}

func (e *NonFiniteScoreError) Error() string {
	if e.Criterion == "" {
		return fmt.Sprintf("supplier %q: total is not a finite number", e.Supplier)
	}
	return fmt.Sprintf("supplier %q: weighted score for %q is not a finite number", e.Supplier, e.Criterion)
}
