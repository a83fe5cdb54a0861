package domain

// StandaloneScopeKey is the storage partition key for answers and progress
// records that are not tied to a specific survey run. Persisting a fixed
// sentinel instead of NULL keeps SQL equality honest: a standalone lookup can
// never match a record scoped to a concrete survey, and vice versa.
const StandaloneScopeKey = "standalone"

// SurveyScope identifies which partition an answer or progress record belongs
// to: either a concrete survey run or the standalone instrument.
type SurveyScope struct {
	surveyID string
}

// StandaloneScope returns the scope for records not tied to any survey run.
func StandaloneScope() SurveyScope {
	return SurveyScope{}
}

// ScopeForSurvey returns the scope for a concrete survey run. An empty ID
// degrades to the standalone scope.
func ScopeForSurvey(surveyID string) SurveyScope {
	return SurveyScope{surveyID: surveyID}
}

// ScopeFromKey reconstructs a scope from its persisted partition key.
func ScopeFromKey(key string) SurveyScope {
	if key == StandaloneScopeKey {
		return SurveyScope{}
	}
	return SurveyScope{surveyID: key}
}

// IsStandalone reports whether the scope is the standalone partition.
func (s SurveyScope) IsStandalone() bool {
	return s.surveyID == ""
}

// SurveyID returns the survey ID and whether the scope names one.
func (s SurveyScope) SurveyID() (string, bool) {
	return s.surveyID, s.surveyID != ""
}

// Key returns the canonical partition key persisted with each record.
func (s SurveyScope) Key() string {
	if s.surveyID == "" {
		return StandaloneScopeKey
	}
	return s.surveyID
}

func (s SurveyScope) String() string {
	return s.Key()
}
