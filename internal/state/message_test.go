package state

import (
	"testing"
	"time"
)

func TestMessageExpiry(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	state := &AppState{now: func() time.Time { return base }}

	state.SetSuccessMessage("saved")
	if state.Message == nil || state.Message.Timeout != DefaultMessageTimeout {
		t.Fatalf("expected default timeout, got %+v", state.Message)
	}

	if state.ExpireMessage(base.Add(2 * time.Second)) {
		t.Fatal("message expired too early")
	}
	if !state.ExpireMessage(base.Add(DefaultMessageTimeout)) {
		t.Fatal("message should expire at its timeout")
	}
	if state.Message != nil {
		t.Fatal("expired message not cleared")
	}
	if state.ExpireMessage(base.Add(time.Hour)) {
		t.Fatal("nothing to expire")
	}
}

func TestMessageUsesConfiguredTimeout(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	state := &AppState{MessageTimeout: 10 * time.Second, now: func() time.Time { return base }}

	state.SetErrorMessage("boom")
	if state.Message.Kind != MessageError {
		t.Fatalf("expected error kind, got %d", state.Message.Kind)
	}
	if state.ExpireMessage(base.Add(5 * time.Second)) {
		t.Fatal("message expired before configured timeout")
	}

	state.SetSuccessMessage("replaced")
	if state.Message.Text != "replaced" || state.Message.Kind != MessageSuccess {
		t.Fatalf("new message did not replace old: %+v", state.Message)
	}
}
