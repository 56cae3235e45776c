package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/quartz"
)

// DefaultDealerDelay is the pause between dealer draws.
const DefaultDealerDelay = 600 * time.Millisecond

// Pacer delays messages on a clock so dealer play unfolds one card at a time.
type Pacer struct {
	clock quartz.Clock
	delay time.Duration
}

// NewPacer returns a pacer on clock. A nil clock uses the real one.
func NewPacer(clock quartz.Clock, delay time.Duration) *Pacer {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Pacer{clock: clock, delay: delay}
}

// After schedules msg and returns a command that yields it once the delay
// has passed. The timer starts immediately, not when the command runs.
func (p *Pacer) After(msg tea.Msg) tea.Cmd {
	if p.delay <= 0 {
		return func() tea.Msg { return msg }
	}
	fired := make(chan tea.Msg, 1)
	p.clock.AfterFunc(p.delay, func() {
		fired <- msg
	})
	return func() tea.Msg {
		return <-fired
	}
}
