package schema

// Metric name constants shared by containers, writers and parquet export.
const (
	MetricIssues         = "issues"
	MetricPullRequests   = "pull_requests"
	MetricCommits        = "commits"
	MetricContributors   = "contributors"
	MetricIssueCloseDays = "issue_close_days"

	MetricQuestions     = "questions"
	MetricAnswers       = "answers"
	MetricNewUsers      = "new_users"
	MetricResponseHours = "response_hours"
)

// agilityMetricNames is the canonical metric ordering for AgilityQuarter.
// The order is part of the serialized contract and must not be reshuffled.
var agilityMetricNames = []string{
	MetricIssues,
	MetricPullRequests,
	MetricCommits,
	MetricContributors,
	MetricIssueCloseDays,
}

// agilityAggregated lists the agility metrics averaged over a trailing year.
var agilityAggregated = []string{MetricIssueCloseDays}

// AgilityQuarter holds one quarter of development activity for a project:
// issue and pull request counts, commit volume, distinct contributors, and
// the mean days-to-close for issues resolved in the quarter.
type AgilityQuarter struct {
	Issues         float64
	PullRequests   float64
	Commits        float64
	Contributors   float64
	IssueCloseDays float64
}

// NewAgilityQuarter returns a zeroed agility bucket.
func NewAgilityQuarter() *AgilityQuarter { return &AgilityQuarter{} }

// MetricNames implements the container contract.
func (q *AgilityQuarter) MetricNames() []string { return agilityMetricNames }

// AggregatedMetrics implements the container contract.
func (q *AgilityQuarter) AggregatedMetrics() []string { return agilityAggregated }

// MetricValues implements the container contract.
func (q *AgilityQuarter) MetricValues() []float64 {
	return []float64{q.Issues, q.PullRequests, q.Commits, q.Contributors, q.IssueCloseDays}
}

// Snapshot implements the container contract.
func (q *AgilityQuarter) Snapshot() map[string]float64 {
	return map[string]float64{
		MetricIssues:         q.Issues,
		MetricPullRequests:   q.PullRequests,
		MetricCommits:        q.Commits,
		MetricContributors:   q.Contributors,
		MetricIssueCloseDays: q.IssueCloseDays,
	}
}

// Restore implements the container contract.
func (q *AgilityQuarter) Restore(snapshot map[string]float64) {
	q.Issues = snapshot[MetricIssues]
	q.PullRequests = snapshot[MetricPullRequests]
	q.Commits = snapshot[MetricCommits]
	q.Contributors = snapshot[MetricContributors]
	q.IssueCloseDays = snapshot[MetricIssueCloseDays]
}

// communityMetricNames is the canonical metric ordering for CommunityQuarter.
var communityMetricNames = []string{
	MetricQuestions,
	MetricAnswers,
	MetricNewUsers,
	MetricResponseHours,
}

// communityAggregated lists the community metrics averaged over a trailing year.
var communityAggregated = []string{MetricResponseHours}

// CommunityQuarter holds one quarter of community activity for a project:
// question and answer counts, newly seen users, and the mean hours until a
// question received its first response.
type CommunityQuarter struct {
	Questions     float64
	Answers       float64
	NewUsers      float64
	ResponseHours float64
}

// NewCommunityQuarter returns a zeroed community bucket.
func NewCommunityQuarter() *CommunityQuarter { return &CommunityQuarter{} }

// MetricNames implements the container contract.
func (q *CommunityQuarter) MetricNames() []string { return communityMetricNames }

// AggregatedMetrics implements the container contract.
func (q *CommunityQuarter) AggregatedMetrics() []string { return communityAggregated }

// MetricValues implements the container contract.
func (q *CommunityQuarter) MetricValues() []float64 {
	return []float64{q.Questions, q.Answers, q.NewUsers, q.ResponseHours}
}

// Snapshot implements the container contract.
func (q *CommunityQuarter) Snapshot() map[string]float64 {
	return map[string]float64{
		MetricQuestions:     q.Questions,
		MetricAnswers:       q.Answers,
		MetricNewUsers:      q.NewUsers,
		MetricResponseHours: q.ResponseHours,
	}
}

// Restore implements the container contract.
func (q *CommunityQuarter) Restore(snapshot map[string]float64) {
	q.Questions = snapshot[MetricQuestions]
	q.Answers = snapshot[MetricAnswers]
	q.NewUsers = snapshot[MetricNewUsers]
	q.ResponseHours = snapshot[MetricResponseHours]
}
