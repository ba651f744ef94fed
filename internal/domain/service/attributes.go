package service

// Unspecified is the sentinel a caller may send for a categorical field to
// state "intentionally omitted". It always passes validation and is resolved
// by the defaults table before encoding.
const Unspecified = "unspecified"

// AttributeRequest is the sparse, loosely-typed field mapping of one scoring
// call. Keys need not cover the full feature set; values are strings or
// numbers and stay untyped until validated.
type AttributeRequest map[string]any

// Has reports whether the field was explicitly provided with a real value,
// i.e. present and not the Unspecified sentinel.
func (r AttributeRequest) Has(field string) bool {
	v, ok := r[field]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString && (s == "" || s == Unspecified) {
		return false
	}
	return true
}
