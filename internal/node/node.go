package node

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/SystemBuilders/Recency/internal/cacheservice"
	"github.com/SystemBuilders/Recency/internal/ratelimit"
	"github.com/SystemBuilders/Recency/internal/routing"
)

// Error provides constant error strings to the driver functions.
type Error string

func (e Error) Error() string { return string(e) }

// Constant errors.
// Rule of thumb, all errors start with a small letter and end with no full stop.
const (
	ErrInvalidPort = Error("port number exceeds limit of 65535")
)

// Start begins the node's operation as a http server fronting the
// cache service. Requests pass through the node's middleware chain
// before reaching the cache routes. The call blocks until the server
// stops serving.
func Start(cs *cacheservice.SimpleCacheService, cfg cacheservice.SimpleConfig, log zerolog.Logger, limiter *ratelimit.TokenBucket) error {
	if err := checkValidPort(cfg.Port()); err != nil {
		return err
	}

	router := mux.NewRouter()
	router.Use(RequestID(log))
	if limiter != nil {
		router.Use(RateLimit(limiter))
	}
	router = routing.SetupRouting(cs, router)

	server := &http.Server{
		Handler: router,
		Addr:    cfg.IP() + ":" + cfg.Port(),
	}

	go gracefulShutdown(server, log)

	log.Info().Str("addr", server.Addr).Msg("starting cache node")
	return server.ListenAndServe()
}

// gracefulShutdown shuts down the server on getting a ^C signal.
func gracefulShutdown(server *http.Server, log zerolog.Logger) {
	interruptChan := make(chan os.Signal, 1)
	signal.Notify(interruptChan, os.Interrupt, syscall.SIGTERM)

	// Block until we receive our signal.
	<-interruptChan

	// Create a deadline to wait for currently serving items.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	server.Shutdown(ctx)

	log.Info().Msg("shutting down")
	os.Exit(0)
}

func checkValidPort(port string) error {
	portInt, err := strconv.Atoi(port)
	if err != nil {
		return err
	}
	if portInt > 65535 {
		return ErrInvalidPort
	}
	return nil
}
