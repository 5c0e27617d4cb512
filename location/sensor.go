package location

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// Sensor is the position capability: a single-shot, high-accuracy request
// for the current position. Implementations must not serve cached values.
type Sensor interface {
	CurrentPosition(ctx context.Context) (Coordinates, error)
}

// SensorFunc adapts a function to the Sensor interface.
type SensorFunc func(ctx context.Context) (Coordinates, error)

func (f SensorFunc) CurrentPosition(ctx context.Context) (Coordinates, error) {
	return f(ctx)
}

var ErrNoPosition = errors.New("no position available")

// StaticSensor always reports the same configured coordinates. Useful on
// machines without positioning hardware, where the user pins a location in
// their config.
type StaticSensor struct {
	Coordinates Coordinates
}

func (s StaticSensor) CurrentPosition(ctx context.Context) (Coordinates, error) {
	return s.Coordinates, nil
}

// UnavailableSensor always fails, for setups with no position source at
// all. The probe turns the failure into an Unknown fix.
type UnavailableSensor struct{}

func (UnavailableSensor) CurrentPosition(ctx context.Context) (Coordinates, error) {
	return Coordinates{}, ErrNoPosition
}

// ReportedSensor serves the position most recently pushed by a client
// (e.g. browser geolocation POSTed to the API). It fails until the first
// report arrives.
type ReportedSensor struct {
	mu       sync.RWMutex
	latest   Coordinates
	reported bool
}

func NewReportedSensor() *ReportedSensor {
	return &ReportedSensor{}
}

// Report records the latest client-supplied position.
func (s *ReportedSensor) Report(coordinates Coordinates) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = coordinates
	s.reported = true
}

func (s *ReportedSensor) CurrentPosition(ctx context.Context) (Coordinates, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.reported {
		return Coordinates{}, ErrNoPosition
	}

	return s.latest, nil
}
