package dto

type ExtractImageInput struct {
	ProjectID string
	Path      string
	// MinConfidence overrides the configured threshold when set.
	MinConfidence *float64
}

type CreatedTaskOutput struct {
	TodoID     string  `json:"todo_id"`
	Title      string  `json:"title"`
	StartDate  string  `json:"start_date,omitempty"`
	EndDate    string  `json:"end_date"`
	Priority   string  `json:"priority"`
	Confidence float64 `json:"confidence"`
}

type RejectedCandidateOutput struct {
	Title      string  `json:"title"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

type ExtractImageOutput struct {
	ProjectID string                    `json:"project_id"`
	Accepted  []CreatedTaskOutput       `json:"accepted"`
	Rejected  []RejectedCandidateOutput `json:"rejected"`
}
