package messages

//StatusMessage informs about the submission leaving pending state
type StatusMessage struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Worker string `json:"worker,omitempty"`
}

//NewStatusMessage creates the message
func NewStatusMessage(id, status, errMsg string) *StatusMessage {
	return &StatusMessage{ID: id, Status: status, Error: errMsg}
}
