package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"campuslink/internal/seed"
)

// The shell's asynchrony is simulated: fixed timers stand in for network
// latency. Every timer message carries the sequence number captured when it
// was scheduled; a bumped sequence (logout, re-login) makes stale timers land
// as no-ops instead of mutating a state they no longer belong to.

// loginDoneMsg fires when the simulated login latency elapses.
type loginDoneMsg struct {
	seq int
}

// autoReplyMsg fires when the simulated peer finishes "typing". It targets a
// thread id, not the open view, so a reply still lands after navigating away.
type autoReplyMsg struct {
	threadID string
	seq      int
}

// seedReloadedMsg delivers freshly parsed seed data from the file watcher.
type seedReloadedMsg struct {
	data seed.Data
}

// scheduleLogin returns the login latency timer.
func scheduleLogin(delay time.Duration, seq int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return loginDoneMsg{seq: seq}
	})
}

// scheduleReply returns the auto-reply timer for a thread.
func scheduleReply(delay time.Duration, threadID string, seq int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return autoReplyMsg{threadID: threadID, seq: seq}
	})
}

// listenReloads waits for the next seed reload. Update re-issues it after
// each delivery; a closed channel ends the loop.
func listenReloads(ch chan seed.Data) tea.Cmd {
	return func() tea.Msg {
		d, ok := <-ch
		if !ok {
			return nil
		}
		return seedReloadedMsg{data: d}
	}
}
