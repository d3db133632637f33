package service

import (
	"errors"
	"strings"
)

var (
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrInternalInconsistency means a computed score left [0,1]. It signals a
	// rule defect, not bad input.
	ErrInternalInconsistency = errors.New("internal inconsistency")
)

// ValidationError lists every problem found in a claim before scoring.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) add(problem string) {
	e.Problems = append(e.Problems, problem)
}

func (e *ValidationError) errOrNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}
