package player

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Display is the single error surface.
type Display interface {
	Show(title, message string)
}

// Banner is a one-slot [Display]: each Show replaces the previous message. Safe for concurrent use.
type Banner struct {
	mu      sync.Mutex
	title   string
	message string
	visible bool
}

func (b *Banner) Show(title, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.title, b.message, b.visible = title, message, true
}

// Dismiss hides the banner ("Proceed Anyway"). The player state is not touched.
func (b *Banner) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.visible = false
}

// Current returns the last message and whether it is still shown.
func (b *Banner) Current() (title, message string, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.title, b.message, b.visible
}

// LogDisplay writes every message to a logger at error level.
type LogDisplay struct {
	Logger *log.Logger
}

func (d LogDisplay) Show(title, message string) {
	d.Logger.Error(title, "message", message)
}
