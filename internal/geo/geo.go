// Package geo abstracts the optional location capture used by the item
// submission form. Capture failure is never fatal: the form keeps its
// free-text location and the caller surfaces a warning.
package geo

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// CaptureTimeout bounds a position request. This is the only timeout in
// the client; all other calls run until their context is cancelled.
const CaptureTimeout = 10 * time.Second

// ErrUnavailable means no position source exists in this environment.
var ErrUnavailable = errors.New("geolocation unavailable")

// Position is a WGS84 coordinate pair.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Locator produces the device's current position.
type Locator interface {
	Current(ctx context.Context) (Position, error)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(ctx context.Context) (Position, error)

func (f LocatorFunc) Current(ctx context.Context) (Position, error) { return f(ctx) }

// None is a Locator for environments with no position source.
var None = LocatorFunc(func(context.Context) (Position, error) {
	return Position{}, ErrUnavailable
})

// Fixed returns a Locator that always reports the given coordinates, for
// flag-provided positions and tests.
func Fixed(lat, lon float64) Locator {
	return LocatorFunc(func(context.Context) (Position, error) {
		return Position{Latitude: lat, Longitude: lon}, nil
	})
}

// Bounded wraps a Locator with the capture timeout.
func Bounded(loc Locator) Locator {
	return LocatorFunc(func(ctx context.Context) (Position, error) {
		ctx, cancel := context.WithTimeout(ctx, CaptureTimeout)
		defer cancel()
		return loc.Current(ctx)
	})
}

// FormatLocation renders the human-readable placeholder embedded in the
// location field after a successful capture.
func FormatLocation(pos Position) string {
	return fmt.Sprintf("Current Location (%.6f, %.6f)", pos.Latitude, pos.Longitude)
}
