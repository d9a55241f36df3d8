package services

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// slowCall is the point past which a service call is logged at info level.
// A cold summary waits on the provider rate limits and can cross it.
const slowCall = 2 * time.Second

// TrackTime logs how long op ran since start. Call it as
// defer TrackTime("op", time.Now()).
func TrackTime(op string, start time.Time) {
	elapsed := time.Since(start)
	entry := log.WithFields(log.Fields{"op": op, "ms": elapsed.Milliseconds()})
	if elapsed >= slowCall {
		entry.Info("slow service call")
		return
	}
	entry.Debug("service call finished")
}
