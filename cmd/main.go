package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/SystemBuilders/Recency/internal/cacheservice"
	"github.com/SystemBuilders/Recency/internal/node"
	"github.com/SystemBuilders/Recency/internal/ratelimit"
)

const (
	cacheCapacity   = 1024
	requestsPerSec  = 500
	limiterInterval = time.Second
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(zerolog.GlobalLevel())

	cs, err := cacheservice.NewSimpleCacheService(log, cacheCapacity)
	if err != nil {
		log.Fatal().Err(err).Msg("creating cache service")
	}

	limiter, err := ratelimit.NewTokenBucket(requestsPerSec, limiterInterval)
	if err != nil {
		log.Fatal().Err(err).Msg("creating rate limiter")
	}

	scfg := cacheservice.NewSimpleConfig("127.0.0.1", "61111")
	if err := node.Start(cs, *scfg, log, limiter); err != nil {
		log.Fatal().Err(err).Msg("cache node stopped")
	}
}
