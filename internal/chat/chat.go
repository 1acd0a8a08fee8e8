// Package chat models the message center: inbox threads, per-thread message
// history and the canned auto-reply used to simulate the peer. There is no
// real messaging transport; the shell schedules the reply on a fixed timer.
package chat

import (
	"github.com/google/uuid"

	"campuslink/internal/logging"
)

// AutoReplyText is what the simulated peer always answers.
const AutoReplyText = "好的，没问题！👌"

// Message is a single chat bubble.
type Message struct {
	ID   string `yaml:"id"`
	Text string `yaml:"text"`
	Mine bool   `yaml:"mine"`
	Time string `yaml:"time"`
}

// Thread is one inbox conversation.
type Thread struct {
	ID       string    `yaml:"id"`
	Peer     string    `yaml:"peer"`
	Avatar   string    `yaml:"avatar"`
	Unread   bool      `yaml:"unread"`
	LastTime string    `yaml:"last_time"`
	History  []Message `yaml:"history"`
}

// Preview returns the text shown on the inbox row: the latest message, or
// empty for a thread with no history.
func (t Thread) Preview() string {
	if len(t.History) == 0 {
		return ""
	}
	return t.History[len(t.History)-1].Text
}

// Inbox owns the thread list in display order.
type Inbox struct {
	threads []Thread
}

// NewInbox seeds an inbox, preserving thread order.
func NewInbox(seed []Thread) *Inbox {
	in := &Inbox{threads: make([]Thread, len(seed))}
	copy(in.threads, seed)
	return in
}

// Threads returns the threads in display order. Read-only for callers.
func (in *Inbox) Threads() []Thread {
	return in.threads
}

// Thread returns the thread with the given id, if present.
func (in *Inbox) Thread(id string) (Thread, bool) {
	for _, t := range in.threads {
		if t.ID == id {
			return t, true
		}
	}
	return Thread{}, false
}

// MarkRead clears the unread badge on a thread.
func (in *Inbox) MarkRead(id string) {
	for i := range in.threads {
		if in.threads[i].ID == id {
			in.threads[i].Unread = false
			return
		}
	}
}

// Send appends an outgoing message to the thread and returns it. Sending to
// an unknown thread is a no-op. Blank text is the caller's responsibility;
// the input bar never submits it.
func (in *Inbox) Send(threadID, text string) (Message, bool) {
	for i := range in.threads {
		if in.threads[i].ID != threadID {
			continue
		}
		m := Message{ID: uuid.NewString(), Text: text, Mine: true, Time: "刚刚"}
		in.threads[i].History = append(in.threads[i].History, m)
		in.threads[i].LastTime = m.Time
		logging.Chat("sent message on thread %s", threadID)
		return m, true
	}
	return Message{}, false
}

// Reply appends the simulated peer reply to the thread. The reply is keyed
// by thread id, so a timer that fires after the chat view closed still lands
// on the right conversation.
func (in *Inbox) Reply(threadID string) (Message, bool) {
	for i := range in.threads {
		if in.threads[i].ID != threadID {
			continue
		}
		m := Message{ID: uuid.NewString(), Text: AutoReplyText, Time: "刚刚"}
		in.threads[i].History = append(in.threads[i].History, m)
		in.threads[i].LastTime = m.Time
		logging.Chat("auto-reply on thread %s", threadID)
		return m, true
	}
	return Message{}, false
}
