package service

import "fmt"

// FeatureAssembler produces the fixed-order numeric vector the classifier
// expects. Every value must already be resolved to a float64: validated
// numerics, defaults, or normalized category indexes.
type FeatureAssembler struct{}

// NewFeatureAssembler creates a FeatureAssembler.
func NewFeatureAssembler() *FeatureAssembler {
	return &FeatureAssembler{}
}

// Assemble builds the vector whose i-th entry corresponds to the i-th column
// name. A column absent from the resolved mapping means the defaults table or
// encoder metadata is out of sync with the artifact, which is a fatal
// integrity violation rather than a caller error.
func (a *FeatureAssembler) Assemble(resolved map[string]float64, columns []string) ([]float64, error) {
	vector := make([]float64, len(columns))
	for i, col := range columns {
		value, ok := resolved[col]
		if !ok {
			return nil, fmt.Errorf("%w: expected column %q missing from resolved features", ErrArtifactIntegrity, col)
		}
		vector[i] = value
	}
	return vector, nil
}
