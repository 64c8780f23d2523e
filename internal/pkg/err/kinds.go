package err

import (
	"errors"
	"strings"
)

var (
	//ErrStoreUnavailable indicates the record store can't be reached or a write was not committed
	ErrStoreUnavailable = errors.New("store unavailable")
	//ErrTranscription indicates a failure of the speech to text stage
	ErrTranscription = errors.New("transcription failed")
	//ErrFeedback indicates a failure of the feedback stage
	ErrFeedback = errors.New("feedback failed")
	//ErrRecordNotFound indicates the record to update does not exist
	ErrRecordNotFound = errors.New("record not found")
	//ErrMalformedRecord indicates a stored record that can't be decoded
	ErrMalformedRecord = errors.New("malformed record")
)

//Kinded is an error tagged with one of the failure kinds above.
// Error() returns only the message, so it can be shown to the user as is.
type Kinded struct {
	Kind  error
	Msg   string
	Cause error
}

func (e *Kinded) Error() string {
	return e.Msg
}

//Is matches the kind
func (e *Kinded) Is(target error) bool {
	return e.Kind == target
}

//Unwrap returns the original library error
func (e *Kinded) Unwrap() error {
	return e.Cause
}

//New creates a kinded error with a message and no cause
func New(kind error, msg string) error {
	return &Kinded{Kind: kind, Msg: nonEmpty(msg, kind)}
}

//Wrap tags cause with kind. Returns nil for nil cause.
// If cause is already of the same kind it is returned unchanged.
func Wrap(kind error, cause error) error {
	if cause == nil {
		return nil
	}
	if errors.Is(cause, kind) {
		return cause
	}
	return &Kinded{Kind: kind, Msg: nonEmpty(cause.Error(), kind), Cause: cause}
}

//WrapMsg tags cause with kind using a custom message
func WrapMsg(kind error, msg string, cause error) error {
	return &Kinded{Kind: kind, Msg: nonEmpty(msg, kind), Cause: cause}
}

//Message returns the message to persist for a failed record
func Message(err error) string {
	if err == nil {
		return ""
	}
	var k *Kinded
	if errors.As(err, &k) {
		return k.Msg
	}
	return nonEmpty(err.Error(), errors.New("unknown error"))
}

func nonEmpty(msg string, def error) string {
	if strings.TrimSpace(msg) == "" {
		return def.Error()
	}
	return msg
}
