package sim

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Simulate. Match with errors.Is.
var (
	ErrInvalidConfig     = errors.New("invalid config")
	ErrInvalidJob        = errors.New("invalid job")
	ErrDuplicateJobID    = errors.New("duplicate job id")
	ErrStepLimitExceeded = errors.New("step limit exceeded")
	ErrTimeLimitExceeded = errors.New("time limit exceeded")
)

// InvalidJobError reports a job whose fields violate the job invariants.
type InvalidJobError struct {
	ID     string
	Reason string
}

func (e *InvalidJobError) Error() string {
	return fmt.Sprintf("invalid job %q: %s", e.ID, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidJob) match.
func (e *InvalidJobError) Is(target error) bool { return target == ErrInvalidJob }

// DuplicateJobIDError reports two jobs sharing an identifier.
type DuplicateJobIDError struct {
	ID string
}

func (e *DuplicateJobIDError) Error() string {
	return fmt.Sprintf("duplicate job id %q", e.ID)
}

func (e *DuplicateJobIDError) Is(target error) bool { return target == ErrDuplicateJobID }

func invalidConfigf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
