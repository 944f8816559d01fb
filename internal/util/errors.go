package util

import "errors"

var (
	ErrValidation = errors.New("invalid submission")

	// ErrUnknownProblemCode means the evaluator produced a problem code the
	// narrative generator has no template for. The two have drifted out of
	// sync, so this must surface loudly instead of being skipped.
	ErrUnknownProblemCode = errors.New("unknown problem code")
)
