// Package dispatch provides the surfaces a composed SOS can be handed to:
// the OS default handler for sms: URIs, or Twilio for direct delivery.
package dispatch

import (
	"os/exec"
	"runtime"

	"github.com/lifeline-sos/lifeline/logger"
)

var logg = logger.NewLogger()

// URIHandoff opens the dispatch target with the operating system's URI
// handler, so the user's own messaging app comes up prefilled. Nothing is
// sent until the user confirms there.
type URIHandoff struct {
	// open launches a URI; replaceable in tests.
	open func(uri string) error
}

func NewURIHandoff() *URIHandoff {
	return &URIHandoff{open: openURI}
}

func (h *URIHandoff) Dispatch(target string) error {
	logg.Infof("Handing off to messaging app: %v", target)
	return h.open(target)
}

func openURI(uri string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", uri).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", uri).Start()
	default:
		return exec.Command("xdg-open", uri).Start()
	}
}
