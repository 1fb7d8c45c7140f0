package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adaptivemw/someipbind/internal/log"
)

// Serve exposes the metrics endpoint. It blocks; run it on its own goroutine.
func Serve(listen, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())
	log.GetLogger().WithField("listen", listen).Info("metrics server starting")
	return http.ListenAndServe(listen, mux)
}
