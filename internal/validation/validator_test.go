package validation

import (
	"strings"
	"testing"

	"orgpulse/internal/dto"

	"github.com/stretchr/testify/assert"
)

const validULID = "01HV5XJ9K2M3N4P5Q6R7S8T9VA"

func TestValidateSaveAnswerRequest(t *testing.T) {
	v := NewValidator()

	t.Run("valid", func(t *testing.T) {
		errs := v.ValidateSaveAnswerRequest(&dto.SaveAnswerRequest{
			ParticipantID: "p1",
			QuestionID:    validULID,
			ResponseText:  "text",
		})
		assert.Empty(t, errs)
	})

	t.Run("missing fields", func(t *testing.T) {
		errs := v.ValidateSaveAnswerRequest(&dto.SaveAnswerRequest{})
		assert.Len(t, errs, 2)
	})

	t.Run("malformed question id", func(t *testing.T) {
		errs := v.ValidateSaveAnswerRequest(&dto.SaveAnswerRequest{
			ParticipantID: "p1",
			QuestionID:    "not-a-ulid",
		})
		assert.Len(t, errs, 1)
		assert.Equal(t, "question_id", errs[0].Field)
	})

	t.Run("oversized text", func(t *testing.T) {
		errs := v.ValidateSaveAnswerRequest(&dto.SaveAnswerRequest{
			ParticipantID: "p1",
			QuestionID:    validULID,
			ResponseText:  strings.Repeat("x", maxResponseTextLength+1),
		})
		assert.Len(t, errs, 1)
		assert.Equal(t, "response_text", errs[0].Field)
	})

	t.Run("negative time spent", func(t *testing.T) {
		errs := v.ValidateSaveAnswerRequest(&dto.SaveAnswerRequest{
			ParticipantID:    "p1",
			QuestionID:       validULID,
			TimeSpentSeconds: -1,
		})
		assert.Len(t, errs, 1)
	})
}

func TestValidateProgressRequest(t *testing.T) {
	v := NewValidator()

	errs := v.ValidateProgressRequest(&dto.ProgressRequest{
		ParticipantID:       "p1",
		AnsweredQuestionIDs: []string{validULID},
	})
	assert.Empty(t, errs)

	errs = v.ValidateProgressRequest(&dto.ProgressRequest{
		ParticipantID:       "p1",
		AnsweredQuestionIDs: []string{"bogus"},
	})
	assert.Len(t, errs, 1)
}

func TestValidateCultureResponseRequest(t *testing.T) {
	v := NewValidator()

	errs := v.ValidateCultureResponseRequest(&dto.SubmitCultureResponseRequest{
		SurveyID:     validULID,
		Demographics: map[string]string{"department": "Sales"},
	})
	assert.Empty(t, errs)

	errs = v.ValidateCultureResponseRequest(&dto.SubmitCultureResponseRequest{})
	assert.Len(t, errs, 1)
	assert.Equal(t, "survey_id", errs[0].Field)

	errs = v.ValidateCultureResponseRequest(&dto.SubmitCultureResponseRequest{
		SurveyID:     validULID,
		Demographics: map[string]string{"bad attr!": "x"},
	})
	assert.Len(t, errs, 1)
}

func TestValidateSurveyIDQuery(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateSurveyIDQuery(validULID))
	assert.Len(t, v.ValidateSurveyIDQuery(""), 1)
	assert.Len(t, v.ValidateSurveyIDQuery("short"), 1)
}

func TestIsValidULID(t *testing.T) {
	assert.True(t, isValidULID(validULID))
	assert.False(t, isValidULID(""))
	assert.False(t, isValidULID("01HV5XJ9K2M3N4P5Q6R7S8T9V"))  // 25 chars
	assert.False(t, isValidULID("01HV5XJ9K2M3N4P5Q6R7S8T9VI")) // I excluded from Crockford base32
}
