package service

import (
	"sort"

	"github.com/churnwatch/risk-service/internal/domain/valueobject"
)

// Blend weights between the classifier and the category heuristics. Fixed by
// policy, not configurable per call.
const (
	classifierWeight = 0.70
	categoryWeight   = 0.30
)

// Confidence band. Confidence is a presentation-layer completeness signal,
// not classifier uncertainty: more explicitly provided fields means higher
// confidence within the band.
const (
	confidenceFloor = 0.75
	confidenceCeil  = 0.95
)

const maxTopFactors = 3
const maxRecommendations = 5

// RiskFactor is one entry of the ranked explanation list.
type RiskFactor struct {
	Field      string
	Importance float64
}

// AggregateInput carries everything the aggregator needs from the rest of
// the pipeline.
type AggregateInput struct {
	ClassifierProbability float64
	CategoryScores        map[string]float64
	// ProvidedFields are the model columns the caller explicitly supplied
	// (present in the request and not the sentinel).
	ProvidedFields []string
	// TotalFields is the size of the model's column contract.
	TotalFields int
	// Importance is the artifact's global feature-importance mapping.
	Importance map[string]float64
}

// AggregateResult is the combined, explainable outcome of one scoring call.
type AggregateResult struct {
	OverallProbability float64
	Confidence         float64
	Tier               valueobject.RiskTier
	TopFactors         []RiskFactor
	Recommendations    []string
}

// RiskAggregator blends the classifier probability with the category
// heuristics into one overall result. Single pass, no retained state.
type RiskAggregator struct{}

// NewRiskAggregator creates a RiskAggregator.
func NewRiskAggregator() *RiskAggregator {
	return &RiskAggregator{}
}

// Aggregate computes the overall probability, tier, confidence, ranked risk
// factors, and recommendations.
func (a *RiskAggregator) Aggregate(in AggregateInput) AggregateResult {
	overall := classifierWeight*in.ClassifierProbability + categoryWeight*mean(in.CategoryScores)
	tier := valueobject.RiskTierFromProbability(overall)

	return AggregateResult{
		OverallProbability: overall,
		Confidence:         a.confidence(len(in.ProvidedFields), in.TotalFields),
		Tier:               tier,
		TopFactors:         a.topFactors(in.ProvidedFields, in.Importance),
		Recommendations:    a.recommendations(tier, in.CategoryScores),
	}
}

// confidence maps request completeness into the configured band.
func (a *RiskAggregator) confidence(provided, total int) float64 {
	if total == 0 {
		return confidenceFloor
	}
	completeness := float64(provided) / float64(total)
	if completeness > 1 {
		completeness = 1
	}
	return confidenceFloor + (confidenceCeil-confidenceFloor)*completeness
}

// topFactors restricts the importance mapping to explicitly provided fields,
// sorts descending by importance, and keeps the top three. Ties break on
// field name so results are stable.
func (a *RiskAggregator) topFactors(provided []string, importance map[string]float64) []RiskFactor {
	factors := make([]RiskFactor, 0, len(provided))
	for _, field := range provided {
		if weight, ok := importance[field]; ok {
			factors = append(factors, RiskFactor{Field: field, Importance: weight})
		}
	}

	sort.Slice(factors, func(i, j int) bool {
		if factors[i].Importance != factors[j].Importance {
			return factors[i].Importance > factors[j].Importance
		}
		return factors[i].Field < factors[j].Field
	})

	if len(factors) > maxTopFactors {
		factors = factors[:maxTopFactors]
	}
	return factors
}

// recommendations selects the tier-keyed message set, then appends the
// messages for whichever single category scored highest, capped at five.
func (a *RiskAggregator) recommendations(tier valueobject.RiskTier, categories map[string]float64) []string {
	msgs := make([]string, 0, maxRecommendations)
	msgs = append(msgs, tierRecommendations[tier.String()]...)

	if dominant := dominantCategory(categories); dominant != "" {
		msgs = append(msgs, categoryRecommendations[dominant]...)
	}

	if len(msgs) > maxRecommendations {
		msgs = msgs[:maxRecommendations]
	}
	return msgs
}

func dominantCategory(categories map[string]float64) string {
	best := ""
	bestScore := -1.0
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if categories[name] > bestScore {
			best = name
			bestScore = categories[name]
		}
	}
	return best
}

func mean(scores map[string]float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

var tierRecommendations = map[string][]string{
	"high": {
		"Immediate intervention required: contact the customer within 24 hours",
		"Consider offering a retention discount or service upgrade",
		"Schedule a personal call with a retention specialist",
	},
	"medium": {
		"Proactive engagement recommended within one week",
		"Send a personalized retention offer",
		"Monitor usage patterns for early warning signs",
	},
	"low": {
		"Customer appears stable: maintain regular engagement",
		"Consider upselling additional services",
		"Include in loyalty program communications",
	},
}

var categoryRecommendations = map[string][]string{
	CategoryDemographic:  {"Highlight family and partner plan options"},
	CategoryService:      {"Offer an onboarding check-in during the first year"},
	CategoryConnectivity: {"Bundle add-on services at a discount"},
	CategoryBilling: {
		"Offer contract upgrade incentives",
		"Promote automatic payment options",
	},
	CategoryFinancial: {"Review pricing and offer a value package"},
}
