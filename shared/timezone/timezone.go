// Package timezone keeps every timestamp the service writes in one configured
// location (APP_TIMEZONE, IANA names such as "UTC" or "Asia/Jakarta").
package timezone

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	appLocation = time.UTC
	mu          sync.RWMutex
)

// Init loads the named location. An empty or unknown name falls back to UTC.
func Init(name string) {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
		setLocation(time.UTC)

		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC")
		setLocation(time.UTC)

		return
	}

	setLocation(loc)
	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")
}

func setLocation(loc *time.Location) {
	mu.Lock()
	appLocation = loc
	mu.Unlock()
}

// Location returns the application location.
func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()

	return appLocation
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(Location())
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(Location())
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
