package shared

const (
	ProjectID = "coachpulse-project" // Can be overridden by env var in main if needed

	TopicInsightsRefresh  = "topic-insights-refresh"
	TopicInsightsComputed = "topic-insights-computed"

	CollectionUsers      = "users"
	CollectionExecutions = "executions"
)
