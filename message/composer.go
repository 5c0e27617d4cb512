// Package message builds the distress text and the telephony URI that
// hands it to a messaging app.
package message

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/lifeline-sos/lifeline/location"
)

const (
	introFallbackLine = "This is an SOS message."
	detainedLine      = "I am being questioned or detained and may not be able to respond."
	checkOnMeLine     = "Please check on me and make sure I am okay."

	locationHeaderLine      = "My last known location is below:"
	locationUnavailableLine = "My location is unavailable right now."

	timeLayout = "Jan 2, 2006 3:04:05 PM"
)

// Report is the outcome of one composition: the message text and the map
// link (empty when the location was unknown). It lives only in session
// state, never in storage.
type Report struct {
	Text    string `json:"text"`
	MapLink string `json:"map_link"`
}

// Compose builds the distress message. Line order and the exact fallback
// for a missing location are fixed; recipients depend on them reading the
// same shape every time.
func Compose(userName string, fix location.Fix, now time.Time) Report {
	mapLink := MapLink(fix)

	lines := []string{}
	if userName != "" {
		lines = append(lines, fmt.Sprintf("My name is %v.", userName))
	} else {
		lines = append(lines, introFallbackLine)
	}

	lines = append(lines, detainedLine, checkOnMeLine)

	if mapLink != "" {
		lines = append(lines, locationHeaderLine, mapLink)
	} else {
		lines = append(lines, locationUnavailableLine)
	}

	lines = append(lines, fmt.Sprintf("Time: %v.", now.Format(timeLayout)))

	return Report{Text: strings.Join(lines, "\n"), MapLink: mapLink}
}

// MapLink renders a maps URL for a known fix, formatting coordinates to 6
// decimal places at this point (not at capture). Unknown -> "".
func MapLink(fix location.Fix) string {
	if !fix.Known {
		return ""
	}

	return fmt.Sprintf("https://maps.google.com/?q=%.6f,%.6f", fix.Latitude, fix.Longitude)
}

// EncodeDispatchTarget builds the sms: URI that opens a prefilled message
// to all recipients. Recipients stay comma-separated before encoding; both
// components are percent-encoded independently.
func EncodeDispatchTarget(recipientsCSV, text string) string {
	return fmt.Sprintf("sms:%v?&body=%v", percentEncode(recipientsCSV), percentEncode(text))
}

// DecodeDispatchTarget splits an encoded sms: URI back into its recipient
// list and body, for dispatch surfaces that deliver messages themselves
// instead of opening a messaging app.
func DecodeDispatchTarget(target string) (recipients []string, body string, err error) {
	trimmed := strings.TrimPrefix(target, "sms:")
	if trimmed == target {
		return nil, "", fmt.Errorf("not an sms dispatch target: %q", target)
	}

	parts := strings.SplitN(trimmed, "?&body=", 2)

	recipientsCSV, err := url.QueryUnescape(parts[0])
	if err != nil {
		return nil, "", fmt.Errorf("malformed recipients in dispatch target: %v", err)
	}

	if len(parts) == 2 {
		body, err = url.QueryUnescape(parts[1])
		if err != nil {
			return nil, "", fmt.Errorf("malformed body in dispatch target: %v", err)
		}
	}

	for _, recipient := range strings.Split(recipientsCSV, ",") {
		if recipient != "" {
			recipients = append(recipients, recipient)
		}
	}

	return recipients, body, nil
}

// percentEncode is query escaping with literal %20 for spaces, matching
// what messaging apps expect in an sms: URI.
func percentEncode(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
