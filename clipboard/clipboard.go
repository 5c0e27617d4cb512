// Package clipboard implements the write-text capability used for
// copy-to-clipboard of the last composed SOS message.
package clipboard

import "github.com/atotto/clipboard"

// System writes to the OS clipboard.
type System struct{}

func (System) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

// Memory keeps the last written text in memory, for tests and for
// headless server runs where the OS clipboard is out of reach.
type Memory struct {
	Last string
}

func (m *Memory) WriteText(text string) error {
	m.Last = text
	return nil
}
