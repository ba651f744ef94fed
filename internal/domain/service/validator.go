package service

import (
	"fmt"
	"sort"
	"strconv"
)

// FieldValidator checks individual field values against the declared numeric
// ranges and categorical allow-lists. It is pure: no side effects, same
// verdict for the same input.
type FieldValidator struct {
	rules ValidationRuleSet
}

// NewFieldValidator creates a validator over the given rule set.
func NewFieldValidator(rules ValidationRuleSet) *FieldValidator {
	return &FieldValidator{rules: rules}
}

// ValidateField checks one (field, raw value) pair and returns the typed
// value on acceptance: float64 for numeric fields, string for categorical
// ones. Unknown fields are rejected.
func (v *FieldValidator) ValidateField(field string, raw any) (any, error) {
	switch {
	case v.rules.IsNumeric(field):
		return v.validateNumeric(field, raw)
	case v.rules.IsCategorical(field):
		return v.validateCategorical(field, raw)
	default:
		return nil, fmt.Errorf("unknown field")
	}
}

// Validate checks every provided field and returns the typed field mapping.
// All per-field failures are aggregated into one ValidationErrors value
// rather than stopping at the first.
func (v *FieldValidator) Validate(req AttributeRequest) (map[string]any, error) {
	typed := make(map[string]any, len(req))
	var verrs ValidationErrors

	// Iterate in sorted order so the error list is deterministic.
	fields := make([]string, 0, len(req))
	for field := range req {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		value, err := v.ValidateField(field, req[field])
		if err != nil {
			verrs = append(verrs, FieldError{Field: field, Reason: err.Error()})
			continue
		}
		typed[field] = value
	}

	if len(verrs) > 0 {
		return nil, verrs
	}
	return typed, nil
}

func (v *FieldValidator) validateNumeric(field string, raw any) (any, error) {
	rule := v.rules.Numeric[field]

	var value float64
	switch n := raw.(type) {
	case float64:
		value = n
	case float32:
		value = float64(n)
	case int:
		value = float64(n)
	case int32:
		value = float64(n)
	case int64:
		value = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not numeric", n)
		}
		value = parsed
	default:
		return nil, fmt.Errorf("value of type %T is not numeric", raw)
	}

	if value < rule.Min {
		return nil, fmt.Errorf("value %v is below minimum allowed value %v", value, rule.Min)
	}
	if value > rule.Max {
		return nil, fmt.Errorf("value %v exceeds maximum allowed value %v", value, rule.Max)
	}
	return value, nil
}

func (v *FieldValidator) validateCategorical(field string, raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("value of type %T is not a category label", raw)
	}

	// The sentinel is always accepted; the defaults table resolves it later.
	if s == Unspecified {
		return s, nil
	}

	for _, allowed := range v.rules.Categorical[field] {
		if s == allowed {
			return s, nil
		}
	}
	return nil, fmt.Errorf("value %q is not an allowed label", s)
}
