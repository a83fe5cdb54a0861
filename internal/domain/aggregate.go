package domain

// KAnonymityThreshold is the minimum slice size below which exact statistics
// must not reach report consumers unguarded.
const KAnonymityThreshold = 7

// WholeOrgSliceKey is the canonical key of the slice covering every response
// in a survey.
const WholeOrgSliceKey = "whole_org"

// WholeOrgSliceLabel is the human label for the whole organization slice.
const WholeOrgSliceLabel = "Whole Organization"

// AggregateSlice is a derived view over the culture responses sharing one
// slice key. It is recomputed from the response set on demand and is safe to
// discard and rebuild at any time.
//
// A slice with N below KAnonymityThreshold keeps its computed numbers (they
// feed internal trend tracking) but carries BelowThreshold so consumer-facing
// rendering can suppress them. Such slices are never silently dropped.
type AggregateSlice struct {
	SliceKey          string        `json:"slice_key"`
	SliceLabel        string        `json:"slice_label"`
	N                 int           `json:"n"`
	BelowThreshold    bool          `json:"below_threshold"`
	ParticipationRate float64       `json:"participation_rate"`
	Now               CultureScores `json:"now"`
	Preferred         CultureScores `json:"preferred"`
	Delta             CultureScores `json:"delta"`
	Congruence        CultureScores `json:"congruence_indicators"`
}
