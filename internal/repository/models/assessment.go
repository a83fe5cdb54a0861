package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a []string as a JSON array in a CLOB column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}

	return json.Unmarshal(bytesToParse, s)
}

// StringMap stores a map[string]string as a JSON object in a CLOB column.
// Used for response demographics.
type StringMap map[string]string

// Value implements the driver.Valuer interface
func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	jsonData, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (m *StringMap) Scan(value interface{}) error {
	if value == nil {
		*m = StringMap{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringMap Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*m = StringMap{}
		return nil
	}

	return json.Unmarshal(bytesToParse, m)
}

// Question represents a row of the canonical question catalog.
type Question struct {
	ID           string    `db:"ID"`            // ULID
	Category     string    `db:"CATEGORY"`      // Catalog category (e.g. Leadership)
	QuestionText string    `db:"QUESTION_TEXT"` // Question body
	DisplayOrder int       `db:"DISPLAY_ORDER"` // Position within the instrument
	CreatedAt    time.Time `db:"CREATED_AT"`
	UpdatedAt    time.Time `db:"UPDATED_AT"`
}

// QuestionAnswer represents one participant's answer to one question.
// Unique on (PARTICIPANT_ID, QUESTION_ID, SURVEY_KEY).
type QuestionAnswer struct {
	ID               string         `db:"ID"`                 // ULID
	ParticipantID    string         `db:"PARTICIPANT_ID"`     // Opaque participant identifier
	QuestionID       string         `db:"QUESTION_ID"`        // Foreign key to questions table
	SurveyKey        string         `db:"SURVEY_KEY"`         // Survey ID or the standalone sentinel
	ResponseText     sql.NullString `db:"RESPONSE_TEXT"`      // Free-form answer text, may be empty
	TimeSpentSeconds int            `db:"TIME_SPENT_SECONDS"` // Time the participant spent on the item
	CreatedAt        time.Time      `db:"CREATED_AT"`
	UpdatedAt        time.Time      `db:"UPDATED_AT"`
}

// AssessmentProgress represents the resumable progress rollup for a
// participant within one survey scope.
type AssessmentProgress struct {
	ID                  string       `db:"ID"`                    // ULID
	ParticipantID       string       `db:"PARTICIPANT_ID"`        // Opaque participant identifier
	SurveyKey           string       `db:"SURVEY_KEY"`            // Survey ID or the standalone sentinel
	AnsweredQuestionIDs StringSlice  `db:"ANSWERED_QUESTION_IDS"` // JSON array of question IDs
	IsCompleted         bool         `db:"IS_COMPLETED"`          // Monotonic completion flag
	CompletedAt         sql.NullTime `db:"COMPLETED_AT"`          // Stamped on first completion
	CreatedAt           time.Time    `db:"CREATED_AT"`
	UpdatedAt           time.Time    `db:"UPDATED_AT"`
}

// Submission represents the immutable final submission record.
// Unique on (PARTICIPANT_ID, SURVEY_KEY) and on ASSESSMENT_ID.
type Submission struct {
	ID                string         `db:"ID"`                 // ULID
	AssessmentID      string         `db:"ASSESSMENT_ID"`      // Human-readable unique identifier
	ParticipantID     string         `db:"PARTICIPANT_ID"`     // Opaque participant identifier
	OrganizationID    sql.NullString `db:"ORGANIZATION_ID"`    // NULL for individual submissions
	SurveyKey         string         `db:"SURVEY_KEY"`         // Survey ID or the standalone sentinel
	TotalQuestions    int            `db:"TOTAL_QUESTIONS"`    // Catalog size at submission time
	AnsweredQuestions int            `db:"ANSWERED_QUESTIONS"` // Non-empty answers at submission time
	SubmittedAt       time.Time      `db:"SUBMITTED_AT"`
	CreatedAt         time.Time      `db:"CREATED_AT"`
}

// Survey represents one run of the culture instrument.
type Survey struct {
	ID             string        `db:"ID"`              // ULID
	OrganizationID string        `db:"ORGANIZATION_ID"` // Owning organization
	Name           string        `db:"NAME"`            // Display name
	InvitedCount   sql.NullInt64 `db:"INVITED_COUNT"`   // Participation rate denominator, if known
	CreatedAt      time.Time     `db:"CREATED_AT"`
	UpdatedAt      time.Time     `db:"UPDATED_AT"`
}

// CultureResponse represents one scored response to the culture instrument.
type CultureResponse struct {
	ID            string         `db:"ID"`             // ULID
	SurveyID      string         `db:"SURVEY_ID"`      // Foreign key to surveys table
	ParticipantID sql.NullString `db:"PARTICIPANT_ID"` // NULL for anonymous responses
	Demographics  StringMap      `db:"DEMOGRAPHICS"`   // JSON object of attribute -> value
	NowClan       float64        `db:"NOW_CLAN"`
	NowAdhocracy  float64        `db:"NOW_ADHOCRACY"`
	NowMarket     float64        `db:"NOW_MARKET"`
	NowHierarchy  float64        `db:"NOW_HIERARCHY"`
	PrefClan      float64        `db:"PREF_CLAN"`
	PrefAdhocracy float64        `db:"PREF_ADHOCRACY"`
	PrefMarket    float64        `db:"PREF_MARKET"`
	PrefHierarchy float64        `db:"PREF_HIERARCHY"`
	SubmittedAt   time.Time      `db:"SUBMITTED_AT"`
	CreatedAt     time.Time      `db:"CREATED_AT"`
}
