package service

import "fmt"

// DefaultsTable supplies a statistically representative value for any field
// absent from a request. Immutable; built once at startup.
type DefaultsTable struct {
	values map[string]any
}

// NewDefaultsTable builds a defaults table and verifies the startup
// invariant: every expected column must have a default. A missing entry is a
// boot-time failure, never a per-call one.
func NewDefaultsTable(values map[string]any, expectedColumns []string) (*DefaultsTable, error) {
	for _, col := range expectedColumns {
		if _, ok := values[col]; !ok {
			return nil, fmt.Errorf("%w: no default for expected column %q", ErrArtifactIntegrity, col)
		}
	}
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &DefaultsTable{values: copied}, nil
}

// Resolve returns the default for a field. The startup invariant guarantees
// an entry exists for every expected column, so there is no error path; a
// miss on a non-column field returns the zero value and false.
func (t *DefaultsTable) Resolve(field string) (any, bool) {
	v, ok := t.values[field]
	return v, ok
}

// Apply fills every field the table knows that is absent from typed (or held
// the sentinel), returning a complete mapping. The input map is not mutated.
func (t *DefaultsTable) Apply(typed map[string]any) map[string]any {
	resolved := make(map[string]any, len(t.values))
	for field, def := range t.values {
		if v, ok := typed[field]; ok {
			if s, isString := v.(string); !isString || s != Unspecified {
				resolved[field] = v
				continue
			}
		}
		resolved[field] = def
	}
	return resolved
}

// TelcoDefaults returns the pre-computed representative values for the
// telecom schema: numeric means and most-frequent training labels.
func TelcoDefaults() map[string]any {
	return map[string]any{
		FieldTenure:           float64(24),
		FieldMonthlyCharges:   float64(65),
		FieldTotalCharges:     float64(1560),
		FieldSeniorCitizen:    float64(0),
		FieldGender:           "Male",
		FieldPartner:          "No",
		FieldDependents:       "No",
		FieldPhoneService:     "Yes",
		FieldInternetService:  "Fiber optic",
		FieldContract:         "Month-to-month",
		FieldPaperlessBilling: "Yes",
		FieldPaymentMethod:    "Electronic check",
		FieldOnlineSecurity:   "No",
		FieldOnlineBackup:     "No",
		FieldDeviceProtection: "No",
		FieldTechSupport:      "No",
	}
}
