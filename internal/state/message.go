package state

import "time"

// DefaultMessageTimeout applies when AppState.MessageTimeout is unset.
const DefaultMessageTimeout = 3 * time.Second

// MessageKind selects how a message is drawn.
type MessageKind int

const (
	MessageSuccess MessageKind = iota
	MessageError
)

// Message is a transient notice shown until it expires.
type Message struct {
	Text    string
	Kind    MessageKind
	Created time.Time
	Timeout time.Duration
}

// Expired reports whether the message has outlived its timeout at now.
func (m *Message) Expired(now time.Time) bool {
	return now.Sub(m.Created) >= m.Timeout
}

func (s *AppState) setMessage(text string, kind MessageKind) {
	timeout := s.MessageTimeout
	if timeout <= 0 {
		timeout = DefaultMessageTimeout
	}
	s.Message = &Message{
		Text:    text,
		Kind:    kind,
		Created: s.clock(),
		Timeout: timeout,
	}
}

// SetSuccessMessage replaces the current message with a success notice.
func (s *AppState) SetSuccessMessage(text string) {
	s.setMessage(text, MessageSuccess)
}

// SetErrorMessage replaces the current message with an error notice.
func (s *AppState) SetErrorMessage(text string) {
	s.setMessage(text, MessageError)
}

// ExpireMessage clears an expired message and reports whether it did.
// The event loop calls it once per iteration.
func (s *AppState) ExpireMessage(now time.Time) bool {
	if s.Message == nil || !s.Message.Expired(now) {
		return false
	}
	s.Message = nil
	return true
}
