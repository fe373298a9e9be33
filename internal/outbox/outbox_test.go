package outbox

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/folio/internal/contact"
	"github.com/verte-zerg/folio/internal/model"
	"github.com/verte-zerg/folio/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "folio.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Status", "Count"}
	rows := [][]string{
		{"sent", "12"},
		{"timeout", "3"},
	}
	lines := formatTable(headers, rows, map[int]bool{1: true})
	want := []string{
		"Status   Count",
		"-------  -----",
		"sent        12",
		"timeout      3",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Name"}, [][]string{{"日本"}, {"ab"}}, nil)
	if lines[2] != "日本" || lines[3] != "ab  " {
		t.Fatalf("unexpected wide rune padding: %q", lines)
	}
}

func TestStatusFor(t *testing.T) {
	if StatusFor(nil) != model.StatusSent {
		t.Fatalf("nil error must be sent")
	}
	timeout := &contact.Error{Kind: contact.KindTimeout, Message: "slow"}
	if StatusFor(timeout) != model.StatusTimeout {
		t.Fatalf("timeout error must be journaled as timeout")
	}
	if StatusFor(errors.New("boom")) != model.StatusFailed {
		t.Fatalf("other errors must be journaled as failed")
	}
}

func TestRecordAndBuildReport(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	msg := contact.Message{Name: "Ada", Email: "ada@example.com", Body: "Hello"}
	sent, err := Record(ctx, st, msg, nil, base)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if sent.ID == "" || sent.Status != model.StatusSent {
		t.Fatalf("unexpected record %+v", sent)
	}
	if _, err := Record(ctx, st, msg, &contact.Error{Kind: contact.KindTimeout, Message: "slow"}, base.Add(time.Minute)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := Record(ctx, st, msg, &contact.Error{Kind: contact.KindRelay, Message: "down"}, base.Add(2*time.Minute)); err != nil {
		t.Fatalf("record: %v", err)
	}

	report, err := BuildReport(ctx, st, model.MessageFilter{})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(report.Messages))
	}
	if report.Counts[model.StatusSent] != 1 || report.Counts[model.StatusTimeout] != 1 || report.Counts[model.StatusFailed] != 1 {
		t.Fatalf("unexpected counts %v", report.Counts)
	}
	if report.Messages[2].Error != "down" {
		t.Fatalf("expected error text journaled, got %q", report.Messages[2].Error)
	}

	filtered, err := BuildReport(ctx, st, model.MessageFilter{Status: model.StatusSent})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(filtered.Messages) != 1 || filtered.Messages[0].ID != sent.ID {
		t.Fatalf("unexpected filtered report %+v", filtered.Messages)
	}
}

func TestRender(t *testing.T) {
	report := Report{
		Messages: []model.MessageRecord{{
			CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			Name:      "Ada",
			Email:     "ada@example.com",
			Body:      "Hello\nthere, this message is long enough to be cut short",
			Status:    model.StatusSent,
		}},
		Counts: map[model.MessageStatus]int{model.StatusSent: 1},
	}
	var buf bytes.Buffer
	if err := Render(&buf, report); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "When") {
		t.Fatalf("expected header first, got %q", out)
	}
	if !strings.Contains(out, "Hello there, this message is lo…") {
		t.Fatalf("expected flattened preview, got %q", out)
	}
	if !strings.Contains(out, "sent: 1  failed: 0  timeout: 0") {
		t.Fatalf("expected totals, got %q", out)
	}
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, Report{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "No messages.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
