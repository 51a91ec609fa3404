package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// DurationOr parses s, returning fallback when s is empty or malformed.
func DurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		// the logger may not be configured yet
		log.Warn().Err(err).Str("duration", s).Dur("fallback", fallback).Msg("Invalid duration, using fallback")
		return fallback
	}
	return d
}
