package processor

import (
	"context"
	"net/http"
	"time"

	"github.com/airenas/interviewcoach/internal/pkg/artifact"
	"github.com/airenas/interviewcoach/internal/pkg/cmdapp"
	"github.com/airenas/interviewcoach/internal/pkg/feedback"
	"github.com/airenas/interviewcoach/internal/pkg/messages"
	"github.com/airenas/interviewcoach/internal/pkg/mongo"
	"github.com/airenas/interviewcoach/internal/pkg/rabbit"
	"github.com/airenas/interviewcoach/internal/pkg/transcriber"
	"github.com/google/uuid"
	"github.com/heptiolabs/healthcheck"
	"github.com/spf13/cobra"
)

var appName = "Interview Answer Processor Service"

var rootCmd = &cobra.Command{
	Use:   "processorService",
	Short: appName,
	Long:  `Worker transcribing recorded interview answers and preparing feedback`,
	Run:   run,
}

func init() {
	cmdapp.InitApplication(rootCmd)
	rootCmd.PersistentFlags().Int32P("port", "", 8000, "Default service port")
	cmdapp.Config.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	setDefaults()
}

func setDefaults() {
	cmdapp.Config.SetDefault("port", 8000)
	cmdapp.Config.SetDefault("worker.idleInterval", 3*time.Second)
	cmdapp.Config.SetDefault("worker.transcribeTimeout", 5*time.Minute)
	cmdapp.Config.SetDefault("worker.critiqueTimeout", 2*time.Minute)
	cmdapp.Config.SetDefault("worker.storeTimeout", 30*time.Second)
	cmdapp.Config.SetDefault("worker.eventQueue", messages.SubmissionStatus)
	// env names used by the upload web app
	cmdapp.Config.BindEnv("mongo.url", "MONGO_URL", "MONGO_URI")
	cmdapp.Config.BindEnv("openai.apiKey", "OPENAI_APIKEY", "OPENAI_API_KEY")
}

//Execute starts the worker
func Execute() {
	cmdapp.Execute(rootCmd)
}

func run(cmd *cobra.Command, args []string) {
	cmdapp.Log.Info("Starting " + appName)
	ctx, cancel := cmdapp.NewSignalContext()
	defer cancel()

	health := healthcheck.NewHandler()

	mongoSessionProvider, err := mongo.NewSessionProvider()
	cmdapp.CheckOrPanic(err, "Can't init mongo")
	defer mongoSessionProvider.Close()
	cmdapp.CheckOrPanic(mongoSessionProvider.Connect(ctx), "Can't connect to mongo")
	health.AddReadinessCheck("mongo", healthcheck.Async(mongoSessionProvider.Healthy, 10*time.Second))

	data := &ServiceData{}
	data.Store, err = mongo.NewSubmissionStore(mongoSessionProvider)
	cmdapp.CheckOrPanic(err, "Can't init submission store")

	opener, err := artifact.NewOpener(cmdapp.Config.GetString("fileStorage.path"))
	cmdapp.CheckOrPanic(err, "Can't init artifact opener")
	defer func() { cmdapp.LogIf(opener.Close()) }()

	httpClient := &http.Client{}
	data.Transcriber, err = transcriber.NewClient(opener, httpClient)
	cmdapp.CheckOrPanic(err, "Can't init transcriber")

	critic, closer, err := feedback.NewCritic(ctx, httpClient)
	cmdapp.CheckOrPanic(err, "Can't init critic")
	if closer != nil {
		defer func() { cmdapp.LogIf(closer.Close()) }()
	}
	data.Critic = critic

	sender, closeSender, err := initSender(health)
	cmdapp.CheckOrPanic(err, "Can't init event sender")
	defer closeSender()
	data.EventSender = sender
	data.EventQueue = cmdapp.Config.GetString("worker.eventQueue")
	data.WorkerID = uuid.New().String()

	data.IdleInterval = cmdapp.Config.GetDuration("worker.idleInterval")
	data.TranscribeTimeout = cmdapp.Config.GetDuration("worker.transcribeTimeout")
	data.CritiqueTimeout = cmdapp.Config.GetDuration("worker.critiqueTimeout")
	data.StoreTimeout = cmdapp.Config.GetDuration("worker.storeTimeout")
	data.metrics = newWorkerMetrics()
	cmdapp.CheckOrPanic(data.metrics.register(), "Can't init metrics")

	fc, err := StartWorkerService(ctx, data)
	cmdapp.CheckOrPanic(err, "Can't start worker")

	go startWeb(ctx, &WebServiceData{Port: cmdapp.Config.GetInt("port"), Health: health})

	<-fc
	cmdapp.Log.Info("Exiting " + appName)
}

func startWeb(ctx context.Context, data *WebServiceData) {
	if err := StartWebServer(ctx, data); err != nil {
		cmdapp.Log.Error(err)
	}
}

func initSender(health healthcheck.Handler) (messages.Sender, func(), error) {
	if cmdapp.Config.GetString("messageServer.url") == "" {
		cmdapp.Log.Info("No messageServer.url, status events are not sent")
		return messages.NoopSender{}, func() {}, nil
	}
	prv, err := rabbit.NewChannelProvider()
	if err != nil {
		return nil, nil, err
	}
	health.AddReadinessCheck("rabbit", healthcheck.Async(prv.Healthy, 10*time.Second))
	return rabbit.NewSender(prv), prv.Close, nil
}
