package domain

import "context"

// QuestionRepository defines read access to the canonical question catalog.
// The catalog is seeded externally and never mutated by the core.
type QuestionRepository interface {
	// CountQuestions returns the size of the catalog (totalRequired).
	CountQuestions(ctx context.Context) (int, error)

	// GetQuestionIDs returns all catalog question IDs in display order.
	GetQuestionIDs(ctx context.Context) ([]string, error)

	// GetQuestionByID retrieves a question, or nil when absent.
	GetQuestionByID(ctx context.Context, id string) (*Question, error)
}

// AnswerRepository defines the interface for question answer persistence
type AnswerRepository interface {
	// GetAnswer retrieves the answer for (participant, question, scope), or
	// nil when none exists.
	GetAnswer(ctx context.Context, participantID, questionID string, scope SurveyScope) (*QuestionAnswer, error)

	// UpsertAnswer atomically inserts or updates the answer identified by
	// (participant, question, scope).
	UpsertAnswer(ctx context.Context, answer *QuestionAnswer) error

	// CountNonEmptyAnswers counts answers whose trimmed text is non-empty for
	// (participant, scope).
	CountNonEmptyAnswers(ctx context.Context, participantID string, scope SurveyScope) (int, error)

	// GetAnsweredQuestionIDs returns the question IDs with non-empty answers
	// for (participant, scope).
	GetAnsweredQuestionIDs(ctx context.Context, participantID string, scope SurveyScope) ([]string, error)
}

// ProgressRepository defines the interface for progress record persistence
type ProgressRepository interface {
	// GetProgress retrieves the progress record for (participant, scope), or
	// nil when none exists.
	GetProgress(ctx context.Context, participantID string, scope SurveyScope) (*AssessmentProgress, error)

	// UpsertProgress inserts or updates the record for (participant, scope).
	UpsertProgress(ctx context.Context, progress *AssessmentProgress) error
}

// SubmissionRepository defines the interface for submission persistence
type SubmissionRepository interface {
	// GetSubmission retrieves the submission for (participant, scope), or nil
	// when none exists.
	GetSubmission(ctx context.Context, participantID string, scope SurveyScope) (*Submission, error)

	// CreateSubmission inserts a submission. Returns ErrAlreadyExists (wrapped)
	// when the (participant, scope) uniqueness constraint rejects the insert.
	CreateSubmission(ctx context.Context, submission *Submission) error

	// NextAssessmentSeq atomically increments and returns the 1-based sequence
	// number for (orgKey, year). Must run inside a transaction.
	NextAssessmentSeq(ctx context.Context, orgKey string, year int) (int, error)
}

// SurveyRepository defines read access to survey runs.
type SurveyRepository interface {
	// GetSurveyByID retrieves a survey, or nil when absent.
	GetSurveyByID(ctx context.Context, id string) (*Survey, error)
}

// CultureResponseRepository defines the interface for scored response persistence
type CultureResponseRepository interface {
	// CreateResponse inserts a scored response. Responses are immutable.
	CreateResponse(ctx context.Context, response *CultureResponse) error

	// GetResponsesBySurvey returns all responses for a survey in submission
	// order.
	GetResponsesBySurvey(ctx context.Context, surveyID string) ([]CultureResponse, error)
}

// TransactionManager runs a function within a storage transaction. The
// transaction travels in the context; repositories pick it up transparently.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
