package domain_test

import (
	"testing"
	"time"

	"github.com/javikin/umbral-sub003/internal/modules/session/domain"
)

func TestCloseComputesDuration(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := domain.Session{ID: "s-1", StartedAt: start}
	closed, err := s.Close(start.Add(30*time.Minute+59*time.Second), domain.UnlockManual)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.DurationMinutes != 30 || closed.UnlockMethod != domain.UnlockManual || closed.Open() {
		t.Fatalf("unexpected closed session: %+v", closed)
	}
	if _, err := closed.Close(start.Add(time.Hour), domain.UnlockManual); err == nil {
		t.Fatalf("closing twice must fail")
	}
}

func TestCloseClampsClockSkew(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	closed, err := domain.Session{ID: "s-1", StartedAt: start}.Close(start.Add(-time.Minute), domain.UnlockTimer)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if !closed.EndedAt.Equal(start) || closed.DurationMinutes != 0 {
		t.Fatalf("endedAt must not precede startedAt: %+v", closed)
	}
}

func TestParseUnlockMethod(t *testing.T) {
	t.Parallel()
	if m, err := domain.ParseUnlockMethod(" NFC "); err != nil || m != domain.UnlockNFC {
		t.Fatalf("parse nfc: %v %q", err, m)
	}
	if _, err := domain.ParseUnlockMethod("fingerprint"); err == nil {
		t.Fatalf("expected error for unknown method")
	}
}
