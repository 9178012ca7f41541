// Package profiling exposes the net/http/pprof endpoints on a private
// listener.
package profiling

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/logger"
)

const defaultPort = 6060

// Config enables the pprof listener.
type Config struct {
	Enabled bool `env:"ENABLE_PROFILING" yaml:"enabled"`
	Port    int  `env:"PPROF_PORT"       yaml:"port"`
}

// NewHandler returns a mux serving the standard /debug/pprof/ endpoints.
func NewHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

// Start serves pprof on localhost in the background when enabled. The
// returned server is nil when profiling is off.
func Start(cfg Config, log logger.Logger) *http.Server {
	if !cfg.Enabled {
		return nil
	}
	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("localhost:%d", port),
		Handler:           NewHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("Starting pprof server", logger.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("pprof server stopped", logger.Error(err))
		}
	}()
	return srv
}
