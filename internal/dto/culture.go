package dto

import "time"

// CultureScores carries one weight per dimension of the culture instrument
// @Description Four dimension weights summing to 100
type CultureScores struct {
	Clan      float64 `json:"clan"`
	Adhocracy float64 `json:"adhocracy"`
	Market    float64 `json:"market"`
	Hierarchy float64 `json:"hierarchy"`
}

// SubmitCultureResponseRequest is the request body for one scored response
type SubmitCultureResponseRequest struct {
	SurveyID      string            `json:"survey_id"`
	ParticipantID string            `json:"participant_id,omitempty"` // empty = anonymous
	Demographics  map[string]string `json:"demographics,omitempty"`
	Now           CultureScores     `json:"now"`
	Preferred     CultureScores     `json:"preferred"`
}

// CultureResponseAck acknowledges a stored scored response
type CultureResponseAck struct {
	ID          string    `json:"id"`
	SurveyID    string    `json:"survey_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// AggregateSliceResponse represents one aggregate slice in the API response.
// Consumers must honor BelowThreshold before rendering the numeric fields.
type AggregateSliceResponse struct {
	SliceKey             string        `json:"slice_key"`
	SliceLabel           string        `json:"slice_label"`
	N                    int           `json:"n"`
	BelowThreshold       bool          `json:"below_threshold"`
	ParticipationRate    float64       `json:"participation_rate"`
	Now                  CultureScores `json:"now"`
	Preferred            CultureScores `json:"preferred"`
	Delta                CultureScores `json:"delta"`
	CongruenceIndicators CultureScores `json:"congruence_indicators"`
}
