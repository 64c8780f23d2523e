package processor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/airenas/interviewcoach/internal/pkg/cmdapp"
	errs "github.com/airenas/interviewcoach/internal/pkg/err"
	"github.com/airenas/interviewcoach/internal/pkg/messages"
	"github.com/airenas/interviewcoach/internal/pkg/persistence"
	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

//Store reads pending submissions and records the outcome
type Store interface {
	FetchNextPending(ctx context.Context) (*persistence.Submission, error)
	MarkProcessed(ctx context.Context, id primitive.ObjectID, transcript, feedback string, at time.Time) error
	MarkError(ctx context.Context, id primitive.ObjectID, msg string, at time.Time) error
}

//Transcriber converts the recorded answer into text
type Transcriber interface {
	Transcribe(ctx context.Context, ref string) (string, error)
}

//Critic makes feedback from the answer text
type Critic interface {
	Critique(ctx context.Context, text string) (string, error)
}

//ServiceData keeps data required for the worker
type ServiceData struct {
	Store       Store
	Transcriber Transcriber
	Critic      Critic
	EventSender messages.Sender
	EventQueue  string
	WorkerID    string

	IdleInterval      time.Duration
	TranscribeTimeout time.Duration
	CritiqueTimeout   time.Duration
	StoreTimeout      time.Duration

	metrics  *workerMetrics
	idleWait func(ctx context.Context, d time.Duration)
	now      func() time.Time
}

const (
	stageTranscribe = "transcribe"
	stageCritique   = "critique"
	opFetch         = "fetch"
	opCommit        = "commit"
)

//StartWorkerService validates data and starts the processing loop.
// The returned channel is closed when the loop exits after ctx is cancelled.
func StartWorkerService(ctx context.Context, data *ServiceData) (<-chan struct{}, error) {
	if err := validate(data); err != nil {
		return nil, err
	}
	cmdapp.Log.Infof("Starting worker %s, idle interval %v", data.WorkerID, data.IdleInterval)
	fc := make(chan struct{})
	go serviceLoop(ctx, data, fc)
	return fc, nil
}

func validate(data *ServiceData) error {
	if data == nil {
		return pkgerrors.New("no service data")
	}
	if data.Store == nil {
		return pkgerrors.New("no store")
	}
	if data.Transcriber == nil {
		return pkgerrors.New("no transcriber")
	}
	if data.Critic == nil {
		return pkgerrors.New("no critic")
	}
	if data.IdleInterval <= 0 {
		return pkgerrors.Errorf("wrong idle interval %v", data.IdleInterval)
	}
	if data.metrics == nil {
		data.metrics = newWorkerMetrics()
	}
	if data.idleWait == nil {
		data.idleWait = sleep
	}
	if data.now == nil {
		data.now = time.Now
	}
	if data.EventSender == nil {
		data.EventSender = messages.NoopSender{}
	}
	return nil
}

func serviceLoop(ctx context.Context, data *ServiceData, fc chan<- struct{}) {
	defer close(fc)
	for ctx.Err() == nil {
		if !processNext(ctx, data) {
			data.metrics.idleWaits.Inc()
			data.idleWait(ctx, data.IdleInterval)
		}
	}
	cmdapp.Log.Infof("Stopped worker %s", data.WorkerID)
}

//processNext handles one pending submission. Returns false if the worker must idle-wait.
func processNext(ctx context.Context, data *ServiceData) bool {
	fCtx, cancel := withTimeout(ctx, data.StoreTimeout)
	sub, err := data.Store.FetchNextPending(fCtx)
	cancel()
	if errors.Is(err, errs.ErrMalformedRecord) && sub != nil {
		cmdapp.Log.Warnf("Submission %s can't be decoded: %v", sub.ID.Hex(), pkgerrors.Cause(err))
		return commitResult(sub, commitError(context.Background(), data, sub, err), data)
	}
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		data.metrics.storeFailures.WithLabelValues(opFetch).Inc()
		cmdapp.Log.Error(pkgerrors.Wrap(err, "can't fetch pending submission"))
		return false
	}
	if sub == nil {
		cmdapp.Log.Debug("No pending submissions")
		return false
	}
	// the submission is finished even if shutdown is requested meanwhile
	return commitResult(sub, process(context.Background(), data, sub), data)
}

func commitResult(sub *persistence.Submission, err error, data *ServiceData) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, errs.ErrRecordNotFound) {
		cmdapp.Log.Warnf("Submission %s disappeared: %v", sub.ID.Hex(), err)
		return true
	}
	data.metrics.storeFailures.WithLabelValues(opCommit).Inc()
	cmdapp.Log.Errorf("Can't commit submission %s: %v", sub.ID.Hex(), err)
	return false
}

func process(ctx context.Context, data *ServiceData, sub *persistence.Submission) error {
	id := sub.ID.Hex()
	cmdapp.Log.Infof("Processing %s, question %d, audio %s", id, sub.QuestionIndex, sub.ArtifactReference)

	transcript, err := runStage(ctx, data, stageTranscribe, data.TranscribeTimeout, errs.ErrTranscription,
		func(ctx context.Context) (string, error) {
			return data.Transcriber.Transcribe(ctx, sub.ArtifactReference)
		})
	if err != nil {
		cmdapp.Log.Warnf("Transcription failed for %s: %v", id, pkgerrors.Cause(err))
		return commitError(ctx, data, sub, err)
	}

	feedback, err := runStage(ctx, data, stageCritique, data.CritiqueTimeout, errs.ErrFeedback,
		func(ctx context.Context) (string, error) {
			return data.Critic.Critique(ctx, transcript)
		})
	if err != nil {
		cmdapp.Log.Warnf("Feedback failed for %s: %v", id, pkgerrors.Cause(err))
		return commitError(ctx, data, sub, err)
	}
	return commitProcessed(ctx, data, sub, transcript, feedback)
}

type stageFunc func(ctx context.Context) (string, error)

func runStage(ctx context.Context, data *ServiceData, stage string, timeout time.Duration, kind error,
	f stageFunc) (string, error) {
	sCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()
	st := time.Now()
	res, err := f(sCtx)
	data.metrics.stageDur.WithLabelValues(stage).Observe(time.Since(st).Seconds())
	if err != nil {
		if !errors.Is(err, kind) && errors.Is(sCtx.Err(), context.DeadlineExceeded) {
			return "", errs.WrapMsg(kind, stageMessage(kind, "timeout"), err)
		}
		return "", errs.Wrap(kind, err)
	}
	if strings.TrimSpace(res) == "" {
		return "", errs.New(kind, stageMessage(kind, "empty"))
	}
	return res, nil
}

func stageMessage(kind error, what string) string {
	switch {
	case kind == errs.ErrTranscription && what == "empty":
		return "empty transcript"
	case kind == errs.ErrTranscription:
		return "transcription " + what
	case what == "empty":
		return "empty feedback"
	}
	return "feedback " + what
}

func commitError(ctx context.Context, data *ServiceData, sub *persistence.Submission, failure error) error {
	msg := errs.Message(failure)
	sCtx, cancel := withTimeout(ctx, data.StoreTimeout)
	defer cancel()
	if err := data.Store.MarkError(sCtx, sub.ID, msg, data.now()); err != nil {
		return err
	}
	data.metrics.submissions.WithLabelValues(string(persistence.StatusError)).Inc()
	sendEvent(data, sub.ID, persistence.StatusError, msg)
	return nil
}

func commitProcessed(ctx context.Context, data *ServiceData, sub *persistence.Submission,
	transcript, feedback string) error {
	sCtx, cancel := withTimeout(ctx, data.StoreTimeout)
	defer cancel()
	if err := data.Store.MarkProcessed(sCtx, sub.ID, transcript, feedback, data.now()); err != nil {
		return err
	}
	data.metrics.submissions.WithLabelValues(string(persistence.StatusProcessed)).Inc()
	cmdapp.Log.Infof("Processed %s", sub.ID.Hex())
	sendEvent(data, sub.ID, persistence.StatusProcessed, "")
	return nil
}

func sendEvent(data *ServiceData, id primitive.ObjectID, status persistence.Status, errMsg string) {
	msg := messages.NewStatusMessage(id.Hex(), string(status), errMsg)
	msg.Worker = data.WorkerID
	if err := data.EventSender.Send(msg, data.EventQueue, ""); err != nil {
		cmdapp.Log.Warnf("Can't send status event for %s: %v", id.Hex(), err)
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
