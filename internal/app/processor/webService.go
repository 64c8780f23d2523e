package processor

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/airenas/interviewcoach/internal/pkg/cmdapp"
	"github.com/gorilla/mux"
	"github.com/heptiolabs/healthcheck"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//WebServiceData keeps data required for the ops HTTP service
type WebServiceData struct {
	Port   int
	Health healthcheck.Handler
}

//StartWebServer starts the ops HTTP service, stops it when ctx is cancelled
func StartWebServer(ctx context.Context, data *WebServiceData) error {
	portStr := strconv.Itoa(data.Port)
	cmdapp.Log.Infof("Starting HTTP service at %s", portStr)
	srv := &http.Server{Addr: ":" + portStr, Handler: NewRouter(data)}
	go func() {
		<-ctx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cmdapp.LogIf(srv.Shutdown(sCtx))
	}()
	err := srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "Can't start HTTP listener at port "+portStr)
	}
	return nil
}

//NewRouter creates the router for the ops HTTP service
func NewRouter(data *WebServiceData) *mux.Router {
	router := mux.NewRouter()
	router.Methods("GET").Path("/metrics").Handler(promhttp.Handler())
	if data.Health != nil {
		router.Methods("GET").Path("/live").HandlerFunc(data.Health.LiveEndpoint)
		router.Methods("GET").Path("/ready").HandlerFunc(data.Health.ReadyEndpoint)
	}
	return router
}
