package events

const (
	SubjectAnalysisCompleted   = "triage.analysis.completed"
	SubjectSuggestionCompleted = "triage.suggestion.completed"
	SubjectStats               = "triage.stats"

	StreamName   = "TRIAGE_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectTaskCreated(taskID string) string { return "triage.task." + taskID + ".created" }
func SubjectTaskUpdated(taskID string) string { return "triage.task." + taskID + ".updated" }
func SubjectTaskDeleted(taskID string) string { return "triage.task." + taskID + ".deleted" }
