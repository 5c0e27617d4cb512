package sos

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lifeline-sos/lifeline/contacts"
	"github.com/lifeline-sos/lifeline/kvstore"
	"github.com/lifeline-sos/lifeline/location"
	"github.com/lifeline-sos/lifeline/profile"
	"github.com/stretchr/testify/assert"
)

type recordingDispatcher struct {
	targets []string
}

func (d *recordingDispatcher) Dispatch(target string) error {
	d.targets = append(d.targets, target)
	return nil
}

type recordingClipboard struct {
	last string
}

func (c *recordingClipboard) WriteText(text string) error {
	c.last = text
	return nil
}

type testHarness struct {
	contacts    *contacts.Store
	profile     *profile.Store
	dispatcher  *recordingDispatcher
	clipboard   *recordingClipboard
	sensorCalls *int
	coordinator *Coordinator
}

func newTestHarness() *testHarness {
	kv := kvstore.NewMemoryStore()

	sensorCalls := 0
	sensor := location.SensorFunc(func(ctx context.Context) (location.Coordinates, error) {
		sensorCalls++
		return location.Coordinates{Latitude: 37.0, Longitude: -122.0}, nil
	})

	harness := &testHarness{
		contacts:    contacts.NewStore(kv),
		profile:     profile.NewStore(kv),
		dispatcher:  &recordingDispatcher{},
		clipboard:   &recordingClipboard{},
		sensorCalls: &sensorCalls,
	}

	harness.coordinator = NewCoordinator(
		harness.contacts,
		harness.profile,
		location.NewProbe(sensor, time.Second),
		harness.dispatcher,
		harness.clipboard,
	)
	harness.coordinator.now = func() time.Time {
		return time.Date(2021, time.November, 5, 17, 4, 5, 0, time.UTC)
	}

	return harness
}

func TestSendWithoutContacts(t *testing.T) {
	harness := newTestHarness()

	status := harness.coordinator.Send(context.Background())

	assert.Equal(t, STATUS_NO_CONTACTS, status)
	assert.Zero(t, *harness.sensorCalls, "the sensor must not be touched without contacts")
	assert.Empty(t, harness.dispatcher.targets, "nothing should be dispatched without contacts")

	_, ok := harness.coordinator.LastReport()
	assert.False(t, ok)
}

func TestSendHappyPath(t *testing.T) {
	harness := newTestHarness()
	assert.Nil(t, harness.profile.SetName("Alex"))

	_, err := harness.contacts.Add("Ama", "555-1234567")
	assert.Nil(t, err)
	_, err = harness.contacts.Add("Kofi", "555-7654321")
	assert.Nil(t, err)

	status := harness.coordinator.Send(context.Background())

	assert.Equal(t, STATUS_DISPATCHED, status)
	assert.Equal(t, IDLE_STATE, harness.coordinator.State())
	assert.Equal(t, 1, *harness.sensorCalls, "exactly one position request per send")

	assert.Len(t, harness.dispatcher.targets, 1)
	target := harness.dispatcher.targets[0]
	assert.True(t, strings.HasPrefix(target, "sms:"))
	assert.Contains(t, target, "555-1234567%2C555-7654321")

	report, ok := harness.coordinator.LastReport()
	assert.True(t, ok)
	assert.Contains(t, report.Text, "My name is Alex.")
	assert.Contains(t, report.Text, "https://maps.google.com/?q=37.000000,-122.000000")
	assert.Equal(t, "https://maps.google.com/?q=37.000000,-122.000000", report.MapLink)
}

func TestSendSurvivesProbeFailure(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	contactStore := contacts.NewStore(kv)
	_, err := contactStore.Add("Ama", "555-1234567")
	assert.Nil(t, err)

	dispatcher := &recordingDispatcher{}
	coordinator := NewCoordinator(
		contactStore,
		profile.NewStore(kv),
		location.NewProbe(location.UnavailableSensor{}, time.Second),
		dispatcher,
		&recordingClipboard{},
	)

	status := coordinator.Send(context.Background())

	assert.Equal(t, STATUS_DISPATCHED, status, "a missing location must not abort the send")

	report, ok := coordinator.LastReport()
	assert.True(t, ok)
	assert.Contains(t, report.Text, "My location is unavailable right now.")
	assert.Empty(t, report.MapLink)
	assert.Len(t, dispatcher.targets, 1)
}

func TestCopyLastMessage(t *testing.T) {
	harness := newTestHarness()

	assert.Equal(t, STATUS_NOTHING_TO_COPY, harness.coordinator.CopyLastMessage())
	assert.Empty(t, harness.clipboard.last)

	_, err := harness.contacts.Add("Ama", "555-1234567")
	assert.Nil(t, err)
	harness.coordinator.Send(context.Background())

	assert.Equal(t, STATUS_COPIED, harness.coordinator.CopyLastMessage())

	report, _ := harness.coordinator.LastReport()
	assert.Equal(t, report.Text, harness.clipboard.last)
}
