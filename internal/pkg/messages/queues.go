package messages

const (
	// SubmissionStatus queue receives status change events
	SubmissionStatus string = "SubmissionStatus"
)
