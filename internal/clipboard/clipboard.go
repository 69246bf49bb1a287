// Package clipboard copies project paths and text reports to the system clipboard.
package clipboard

import (
	"fmt"

	"fyne.io/fyne/v2"
)

// Writer puts text on the clipboard.
type Writer interface {
	SetContent(content string) error
}

// FyneWriter implements Writer using Fyne's clipboard.
type FyneWriter struct {
	clipboard fyne.Clipboard
}

// NewFyneWriter wraps the clipboard of a running Fyne app.
func NewFyneWriter(clipboard fyne.Clipboard) *FyneWriter {
	return &FyneWriter{clipboard: clipboard}
}

// SetContent replaces the clipboard content. Empty text is rejected so a
// stale selection never wipes what the user copied elsewhere.
func (c *FyneWriter) SetContent(content string) error {
	if c.clipboard == nil {
		return fmt.Errorf("clipboard is not available")
	}
	if content == "" {
		return fmt.Errorf("nothing to copy")
	}
	c.clipboard.SetContent(content)
	return nil
}
