package controllers

import (
	"net/http"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

// NewRouter mounts every controller on its bind pattern, behind session
// resolution and request logging.
func NewRouter(controllers []entities.Controller, middleware *SessionMiddleware) http.Handler {
	mux := http.NewServeMux()
	for _, controller := range controllers {
		bind := controller.GetBind()
		logger.Debugf("Mounting %s (%s)", bind.Pattern(), bind.Summary)
		mux.HandleFunc(bind.Pattern(), controller.Execute)
	}
	return logRequests(middleware.Wrap(mux))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		logger.WithFields(logger.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   recorder.status,
			"duration": time.Since(start).String(),
		}).Info("Handled request")
	})
}
