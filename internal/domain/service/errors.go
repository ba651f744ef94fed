package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrArtifactIntegrity marks a mismatch between the model artifact's column
// contract and the defaults or encoder metadata. It indicates a deployment
// bug, not bad caller input, and must never be surfaced verbatim to callers.
var ErrArtifactIntegrity = errors.New("model artifact integrity violation")

// ErrClassifierInvocation marks a failure inside the classifier call itself,
// which points at a corrupted artifact.
var ErrClassifierInvocation = errors.New("classifier invocation failed")

// FieldError describes a single rejected field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationErrors aggregates all per-field failures of one request. Scoring
// does not proceed when it is non-empty.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationErrors extracts ValidationErrors from an error chain.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}
