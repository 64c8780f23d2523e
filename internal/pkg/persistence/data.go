package persistence

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

//Status is the persisted submission state
type Status string

const (
	//StatusPending is set by the upload service, the record is waiting for the processor
	StatusPending Status = "pending"
	//StatusProcessed means transcript and feedback are ready
	StatusProcessed Status = "processed"
	//StatusError means one of the stages failed, see ErrorMessage
	StatusError Status = "error"
)

const (
	FieldID            = "_id"
	FieldArtifact      = "file_path"
	FieldQuestionIndex = "question_index"
	FieldAttempt       = "attempt"
	FieldStatus        = "status"
	FieldTranscript    = "transcript"
	FieldFeedback      = "analysis"
	FieldErrorMessage  = "error_message"
	FieldCreatedAt     = "created_at"
	FieldProcessedAt   = "processed_at"
)

type (
	//Submission is one recorded answer and its processing outcome
	Submission struct {
		ID                primitive.ObjectID `bson:"_id,omitempty"`
		ArtifactReference string             `bson:"file_path"`
		QuestionIndex     int                `bson:"question_index"`
		Attempt           int                `bson:"attempt,omitempty"`
		Status            Status             `bson:"status"`
		Transcript        string             `bson:"transcript,omitempty"`
		Feedback          string             `bson:"analysis,omitempty"`
		ErrorMessage      string             `bson:"error_message,omitempty"`
		CreatedAt         *time.Time         `bson:"created_at,omitempty"`
		ProcessedAt       *time.Time         `bson:"processed_at,omitempty"`
	}
)

//Terminal returns true if the record has left the pending state
func (s Status) Terminal() bool {
	return s == StatusProcessed || s == StatusError
}
