package mongo

import (
	"context"
	"time"

	"github.com/airenas/interviewcoach/internal/pkg/cmdapp"
	errs "github.com/airenas/interviewcoach/internal/pkg/err"
	"github.com/airenas/interviewcoach/internal/pkg/persistence"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//CollectionProvider returns mongo collection by name
type CollectionProvider interface {
	Collection(ctx context.Context, table string) (*mongo.Collection, error)
}

//SubmissionStore reads pending submissions and saves processing outcome
type SubmissionStore struct {
	SessionProvider CollectionProvider
}

//NewSubmissionStore creates SubmissionStore instance
func NewSubmissionStore(sessionProvider CollectionProvider) (*SubmissionStore, error) {
	if sessionProvider == nil {
		return nil, errors.New("no session provider")
	}
	return &SubmissionStore{SessionProvider: sessionProvider}, nil
}

//FetchNextPending returns the oldest pending submission or nil if there is none.
// If the record can't be decoded, a submission with only the ID set is returned
// together with ErrMalformedRecord, so the caller can mark it failed.
func (ss *SubmissionStore) FetchNextPending(ctx context.Context) (*persistence.Submission, error) {
	c, err := ss.SessionProvider.Collection(ctx, recordsTable)
	if err != nil {
		return nil, errs.Wrap(errs.ErrStoreUnavailable, err)
	}
	raw, err := c.FindOne(ctx, bson.M{persistence.FieldStatus: persistence.StatusPending},
		options.FindOne().SetSort(bson.D{{Key: persistence.FieldCreatedAt, Value: 1}, {Key: persistence.FieldID, Value: 1}})).
		DecodeBytes()
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrStoreUnavailable, errors.Wrap(err, "can't get pending record"))
	}
	return decodeSubmission(raw)
}

func decodeSubmission(raw bson.Raw) (*persistence.Submission, error) {
	var res persistence.Submission
	err := bson.Unmarshal(raw, &res)
	if err == nil {
		return &res, nil
	}
	id, ok := raw.Lookup(persistence.FieldID).ObjectIDOK()
	if !ok {
		return nil, errs.Wrap(errs.ErrStoreUnavailable, errors.Wrap(err, "can't decode pending record without ObjectID"))
	}
	return &persistence.Submission{ID: id, Status: persistence.StatusPending},
		errs.WrapMsg(errs.ErrMalformedRecord, "malformed record: "+err.Error(), err)
}

//MarkProcessed sets status processed with the results
func (ss *SubmissionStore) MarkProcessed(ctx context.Context, id primitive.ObjectID, transcript, feedback string,
	at time.Time) error {
	cmdapp.Log.Infof("Saving processed %s", id.Hex())
	return ss.update(ctx, id, bson.M{
		"$set": bson.M{persistence.FieldStatus: persistence.StatusProcessed,
			persistence.FieldTranscript:  transcript,
			persistence.FieldFeedback:    feedback,
			persistence.FieldProcessedAt: at},
		"$unset": bson.M{persistence.FieldErrorMessage: ""}})
}

//MarkError sets status error with the failure message
func (ss *SubmissionStore) MarkError(ctx context.Context, id primitive.ObjectID, msg string, at time.Time) error {
	cmdapp.Log.Infof("Saving error %s: %s", id.Hex(), msg)
	return ss.update(ctx, id, bson.M{
		"$set": bson.M{persistence.FieldStatus: persistence.StatusError,
			persistence.FieldErrorMessage: msg,
			persistence.FieldProcessedAt:  at}})
}

func (ss *SubmissionStore) update(ctx context.Context, id primitive.ObjectID, upd bson.M) error {
	c, err := ss.SessionProvider.Collection(ctx, recordsTable)
	if err != nil {
		return errs.Wrap(errs.ErrStoreUnavailable, err)
	}
	res, err := c.UpdateOne(ctx, bson.M{persistence.FieldID: id}, upd)
	if err != nil {
		return errs.Wrap(errs.ErrStoreUnavailable, errors.Wrapf(err, "can't update %s", id.Hex()))
	}
	if res.MatchedCount == 0 {
		return errs.New(errs.ErrRecordNotFound, "no record "+id.Hex())
	}
	return nil
}
