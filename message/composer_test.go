package message

import (
	"strings"
	"testing"
	"time"

	"github.com/lifeline-sos/lifeline/location"
	"github.com/stretchr/testify/assert"
)

var fixedTime = time.Date(2021, time.November, 5, 17, 4, 5, 0, time.UTC)

func TestComposeWithoutLocation(t *testing.T) {
	report := Compose("Alex", location.Unknown, fixedTime)

	lines := strings.Split(report.Text, "\n")
	assert.Equal(t, []string{
		"My name is Alex.",
		"I am being questioned or detained and may not be able to respond.",
		"Please check on me and make sure I am okay.",
		"My location is unavailable right now.",
		"Time: Nov 5, 2021 5:04:05 PM.",
	}, lines)

	assert.Empty(t, report.MapLink)
	assert.NotContains(t, report.Text, "maps.google.com", "no map-link line without a fix")
}

func TestComposeWithLocationAndNoName(t *testing.T) {
	report := Compose("", location.KnownFix(37.0, -122.0), fixedTime)

	assert.True(t, strings.HasPrefix(report.Text, "This is an SOS message."))
	assert.Equal(t, "https://maps.google.com/?q=37.000000,-122.000000", report.MapLink)

	lines := strings.Split(report.Text, "\n")
	assert.Contains(t, lines, "My last known location is below:")
	assert.Contains(t, lines, "https://maps.google.com/?q=37.000000,-122.000000")
	assert.NotContains(t, lines, "My location is unavailable right now.")
}

func TestMapLinkFormatsSixDecimals(t *testing.T) {
	assert.Equal(t,
		"https://maps.google.com/?q=6.524379,3.379206",
		MapLink(location.KnownFix(6.5243793, 3.3792057)))
	assert.Equal(t, "", MapLink(location.Unknown))
}

func TestEncodeDispatchTarget(t *testing.T) {
	target := EncodeDispatchTarget("555-1234567,5551234567", "Help me\nTime: now.")

	assert.True(t, strings.HasPrefix(target, "sms:"))
	assert.Contains(t, target, "?&body=")
	assert.Contains(t, target, "555-1234567%2C5551234567")
	assert.Contains(t, target, "Help%20me%0ATime%3A%20now.")
}

func TestDecodeDispatchTarget(t *testing.T) {
	target := EncodeDispatchTarget("555-1234567,5551234567", "Help me\nplease")

	recipients, body, err := DecodeDispatchTarget(target)
	assert.Nil(t, err)
	assert.Equal(t, []string{"555-1234567", "5551234567"}, recipients)
	assert.Equal(t, "Help me\nplease", body)

	_, _, err = DecodeDispatchTarget("mailto:someone")
	assert.NotNil(t, err)
}
