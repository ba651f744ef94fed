package service

// Canonical field names of the customer record.
const (
	FieldTenure           = "tenure"
	FieldMonthlyCharges   = "monthly_charges"
	FieldTotalCharges     = "total_charges"
	FieldSeniorCitizen    = "senior_citizen"
	FieldGender           = "gender"
	FieldPartner          = "partner"
	FieldDependents       = "dependents"
	FieldPhoneService     = "phone_service"
	FieldInternetService  = "internet_service"
	FieldContract         = "contract"
	FieldPaperlessBilling = "paperless_billing"
	FieldPaymentMethod    = "payment_method"
	FieldOnlineSecurity   = "online_security"
	FieldOnlineBackup     = "online_backup"
	FieldDeviceProtection = "device_protection"
	FieldTechSupport      = "tech_support"
)

// NumericRule declares the inclusive range of a numeric field.
type NumericRule struct {
	Min float64
	Max float64
}

// ValidationRuleSet maps field names to their numeric ranges or categorical
// allow-lists. Immutable after construction.
type ValidationRuleSet struct {
	Numeric     map[string]NumericRule
	Categorical map[string][]string
}

// IsNumeric reports whether the field is governed by a numeric range rule.
func (rs ValidationRuleSet) IsNumeric(field string) bool {
	_, ok := rs.Numeric[field]
	return ok
}

// IsCategorical reports whether the field is governed by an allow-list rule.
func (rs ValidationRuleSet) IsCategorical(field string) bool {
	_, ok := rs.Categorical[field]
	return ok
}

// Knows reports whether the rule set has any rule for the field.
func (rs ValidationRuleSet) Knows(field string) bool {
	return rs.IsNumeric(field) || rs.IsCategorical(field)
}

// TelcoRuleSet returns the validation rules for the telecom customer schema
// the bundled classifier was trained on.
func TelcoRuleSet() ValidationRuleSet {
	yesNo := []string{"Yes", "No"}
	return ValidationRuleSet{
		Numeric: map[string]NumericRule{
			FieldTenure:         {Min: 0, Max: 120},
			FieldMonthlyCharges: {Min: 0, Max: 2000},
			FieldTotalCharges:   {Min: 0, Max: 150000},
			FieldSeniorCitizen:  {Min: 0, Max: 1},
		},
		Categorical: map[string][]string{
			FieldGender:           {"Male", "Female"},
			FieldPartner:          yesNo,
			FieldDependents:       yesNo,
			FieldPhoneService:     yesNo,
			FieldInternetService:  {"DSL", "Fiber optic", "No"},
			FieldContract:         {"Month-to-month", "One year", "Two year"},
			FieldPaperlessBilling: yesNo,
			FieldPaymentMethod: {
				"Electronic check",
				"Mailed check",
				"Bank transfer (automatic)",
				"Credit card (automatic)",
			},
			FieldOnlineSecurity:   yesNo,
			FieldOnlineBackup:     yesNo,
			FieldDeviceProtection: yesNo,
			FieldTechSupport:      yesNo,
		},
	}
}
