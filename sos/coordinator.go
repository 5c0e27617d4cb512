// Package sos orchestrates a single distress send: precondition checks,
// best-effort location, composition, and handoff to a dispatch surface.
package sos

import (
	"context"
	"time"

	"github.com/lifeline-sos/lifeline/contacts"
	"github.com/lifeline-sos/lifeline/location"
	"github.com/lifeline-sos/lifeline/logger"
	"github.com/lifeline-sos/lifeline/message"
	"github.com/lifeline-sos/lifeline/profile"
)

// Coordinator states. Each send is one linear pass back to idle.
const (
	IDLE_STATE        = "idle"
	LOCATING_STATE    = "locating"
	COMPOSING_STATE   = "composing"
	DISPATCHING_STATE = "dispatching"
)

// User-facing status text.
const (
	STATUS_NO_CONTACTS     = "Add at least one trusted contact before sending an SOS."
	STATUS_LOCATING        = "Getting your location..."
	STATUS_DISPATCHED      = "SOS prepared. Confirm sending in your messaging app."
	STATUS_NOTHING_TO_COPY = "No SOS message has been composed yet."
	STATUS_COPIED          = "SOS message copied."
	STATUS_COPY_FAILED     = "Unable to copy the SOS message."
)

var logg = logger.NewLogger()

// Dispatcher hands a composed dispatch target to an external messaging
// surface. Fire-and-forget: delivery is never confirmed here.
type Dispatcher interface {
	Dispatch(target string) error
}

// Clipboard is the write-text capability used by CopyLastMessage.
type Clipboard interface {
	WriteText(text string) error
}

// Coordinator runs the send state machine. It is NOT reentrant: a second
// Send while one is in flight is unsupported, by design - each coordinator
// serves a single user session driving one action at a time.
type Coordinator struct {
	contacts   *contacts.Store
	profile    *profile.Store
	probe      *location.Probe
	dispatcher Dispatcher
	clipboard  Clipboard

	now        func() time.Time
	state      string
	status     string
	lastReport *message.Report
}

func NewCoordinator(
	contactStore *contacts.Store,
	profileStore *profile.Store,
	probe *location.Probe,
	dispatcher Dispatcher,
	clipboard Clipboard,
) *Coordinator {
	return &Coordinator{
		contacts:   contactStore,
		profile:    profileStore,
		probe:      probe,
		dispatcher: dispatcher,
		clipboard:  clipboard,
		now:        time.Now,
		state:      IDLE_STATE,
	}
}

// Send runs one full SOS pass and returns the final status text. A probe
// failure never aborts the send; only an empty contact list does, before
// any capability is touched.
func (c *Coordinator) Send(ctx context.Context) string {
	if len(c.contacts.List()) == 0 {
		c.status = STATUS_NO_CONTACTS
		return c.status
	}

	c.state = LOCATING_STATE
	c.status = STATUS_LOCATING
	fix := c.probe.AcquireOnce(ctx)

	c.state = COMPOSING_STATE
	report := message.Compose(c.profile.Name(), fix, c.now())
	c.lastReport = &report

	c.state = DISPATCHING_STATE
	target := message.EncodeDispatchTarget(c.contacts.RecipientsCSV(), report.Text)
	if err := c.dispatcher.Dispatch(target); err != nil {
		// The handoff is fire-and-forget; the user still has the composed
		// text to fall back on.
		logg.Warnf("dispatch handoff failed: %v", err)
	}

	c.state = IDLE_STATE
	c.status = STATUS_DISPATCHED

	return c.status
}

// CopyLastMessage hands the last composed text to the clipboard capability.
func (c *Coordinator) CopyLastMessage() string {
	if c.lastReport == nil {
		return STATUS_NOTHING_TO_COPY
	}

	if err := c.clipboard.WriteText(c.lastReport.Text); err != nil {
		logg.Warnf("clipboard write failed: %v", err)
		return STATUS_COPY_FAILED
	}

	return STATUS_COPIED
}

// LastReport returns the report composed by the most recent send, if any.
func (c *Coordinator) LastReport() (message.Report, bool) {
	if c.lastReport == nil {
		return message.Report{}, false
	}

	return *c.lastReport, true
}

func (c *Coordinator) State() string {
	return c.state
}

func (c *Coordinator) Status() string {
	return c.status
}
