package service

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/shopspring/decimal"
)

// Category names of the heuristic decomposition.
const (
	CategoryDemographic  = "demographic"
	CategoryService      = "service"
	CategoryConnectivity = "connectivity"
	CategoryBilling      = "billing"
	CategoryFinancial    = "financial"
)

// FactHighBillThreshold is injected into the fact map so billing rules can
// reference the configured threshold instead of a hard-coded number.
const FactHighBillThreshold = "high_bill_threshold"

// AdjustmentRule is one declarative entry of the category rule table: a
// predicate over the resolved attribute facts and the delta applied when it
// holds.
type AdjustmentRule struct {
	Name  string
	When  string
	Delta float64
}

// CategorySpec declares one heuristic category: its base score, clamping
// bounds, and adjustment rules.
type CategorySpec struct {
	Name  string
	Base  float64
	Min   float64
	Max   float64
	Rules []AdjustmentRule
}

type compiledRule struct {
	rule    AdjustmentRule
	program *vm.Program
}

type compiledCategory struct {
	spec  CategorySpec
	rules []compiledRule
}

// CategoryRiskEstimator computes the five heuristic risk scores directly from
// raw (validated and defaulted) input, independent of the classifier, so each
// category stays interpretable even for fields the model never saw.
type CategoryRiskEstimator struct {
	categories        []compiledCategory
	highBillThreshold float64
	logger            *slog.Logger
}

// NewCategoryRiskEstimator compiles the rule table. A rule that does not
// compile is a configuration bug and fails construction.
func NewCategoryRiskEstimator(specs []CategorySpec, highBillThreshold decimal.Decimal, logger *slog.Logger) (*CategoryRiskEstimator, error) {
	est := &CategoryRiskEstimator{
		highBillThreshold: highBillThreshold.InexactFloat64(),
		logger:            logger,
	}
	for _, spec := range specs {
		cc := compiledCategory{spec: spec}
		for _, rule := range spec.Rules {
			program, err := expr.Compile(rule.When, expr.AsBool())
			if err != nil {
				return nil, fmt.Errorf("compile rule %s/%s: %w", spec.Name, rule.Name, err)
			}
			cc.rules = append(cc.rules, compiledRule{rule: rule, program: program})
		}
		est.categories = append(est.categories, cc)
	}
	return est, nil
}

// Scores evaluates every category against the resolved attribute facts. Each
// score is clamped to its declared bounds no matter how many rules fire.
func (e *CategoryRiskEstimator) Scores(resolved map[string]any) map[string]float64 {
	facts := make(map[string]any, len(resolved)+1)
	for k, v := range resolved {
		facts[k] = v
	}
	facts[FactHighBillThreshold] = e.highBillThreshold

	scores := make(map[string]float64, len(e.categories))
	for _, cat := range e.categories {
		score := cat.spec.Base
		for _, cr := range cat.rules {
			out, err := expr.Run(cr.program, facts)
			if err != nil {
				e.logger.Warn("category rule evaluation failed, skipping rule",
					slog.String("category", cat.spec.Name),
					slog.String("rule", cr.rule.Name),
					slog.String("error", err.Error()),
				)
				continue
			}
			if fired, ok := out.(bool); ok && fired {
				score += cr.rule.Delta
			}
		}
		scores[cat.spec.Name] = clamp(score, cat.spec.Min, cat.spec.Max)
	}
	return scores
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TelcoCategorySpecs returns the business rule table for the telecom schema.
// Deltas mirror the retention team's current playbook.
func TelcoCategorySpecs() []CategorySpec {
	return []CategorySpec{
		{
			Name: CategoryDemographic,
			Base: 0.30, Min: 0.30, Max: 0.65,
			Rules: []AdjustmentRule{
				{Name: "senior_citizen", When: `senior_citizen == 1`, Delta: 0.15},
				{Name: "no_partner", When: `partner == "No"`, Delta: 0.10},
				{Name: "no_dependents", When: `dependents == "No"`, Delta: 0.10},
			},
		},
		{
			Name: CategoryService,
			Base: 0.40, Min: 0.20, Max: 0.70,
			Rules: []AdjustmentRule{
				{Name: "new_customer", When: `tenure < 12`, Delta: 0.30},
				{Name: "long_term_customer", When: `tenure > 60`, Delta: -0.20},
				{Name: "no_phone_service", When: `phone_service == "No"`, Delta: 0.10},
			},
		},
		{
			Name: CategoryConnectivity,
			Base: 0.35, Min: 0.15, Max: 0.50,
			Rules: []AdjustmentRule{
				{Name: "premium_internet", When: `internet_service == "Fiber optic"`, Delta: 0.15},
				{Name: "no_internet", When: `internet_service == "No"`, Delta: -0.10},
				{Name: "online_security_addon", When: `online_security == "Yes"`, Delta: -0.05},
				{Name: "online_backup_addon", When: `online_backup == "Yes"`, Delta: -0.05},
				{Name: "device_protection_addon", When: `device_protection == "Yes"`, Delta: -0.05},
				{Name: "tech_support_addon", When: `tech_support == "Yes"`, Delta: -0.05},
			},
		},
		{
			Name: CategoryBilling,
			Base: 0.50, Min: 0.25, Max: 0.80,
			Rules: []AdjustmentRule{
				{Name: "month_to_month", When: `contract == "Month-to-month"`, Delta: 0.30},
				{Name: "long_term_contract", When: `contract == "One year" || contract == "Two year"`, Delta: -0.25},
				{Name: "paperless_billing", When: `paperless_billing == "Yes"`, Delta: 0.05},
				{Name: "electronic_check", When: `payment_method == "Electronic check"`, Delta: 0.15},
				{Name: "automatic_payment", When: `payment_method endsWith "(automatic)"`, Delta: -0.10},
			},
		},
		{
			Name: CategoryFinancial,
			Base: 0.30, Min: 0.30, Max: 0.60,
			Rules: []AdjustmentRule{
				{Name: "high_bill", When: `monthly_charges > high_bill_threshold`, Delta: 0.20},
				{
					Name:  "inconsistent_charges",
					When:  `tenure > 0 && monthly_charges > 0 && total_charges / (tenure * monthly_charges) < 0.8`,
					Delta: 0.10,
				},
			},
		},
	}
}
