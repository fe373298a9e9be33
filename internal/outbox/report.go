// Package outbox journals contact submissions and renders the journal.
package outbox

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/folio/internal/contact"
	"github.com/verte-zerg/folio/internal/model"
)

// Journal is the message storage used by the outbox.
type Journal interface {
	InsertMessage(ctx context.Context, rec model.MessageRecord) error
	ListMessages(ctx context.Context, filter model.MessageFilter) ([]model.MessageRecord, error)
}

// StatusFor maps a delivery error to the journaled status.
func StatusFor(err error) model.MessageStatus {
	switch {
	case err == nil:
		return model.StatusSent
	case contact.IsKind(err, contact.KindTimeout):
		return model.StatusTimeout
	default:
		return model.StatusFailed
	}
}

// Record journals the outcome of one delivered attempt.
func Record(ctx context.Context, j Journal, msg contact.Message, deliveryErr error, now time.Time) (model.MessageRecord, error) {
	rec := model.MessageRecord{
		ID:        uuid.NewString(),
		CreatedAt: now,
		Name:      msg.Name,
		Email:     msg.Email,
		Body:      msg.Body,
		Status:    StatusFor(deliveryErr),
	}
	if deliveryErr != nil {
		rec.Error = deliveryErr.Error()
	}
	if err := j.InsertMessage(ctx, rec); err != nil {
		return model.MessageRecord{}, fmt.Errorf("failed to journal message: %w", err)
	}
	return rec, nil
}

// Report is a filtered view of the journal.
type Report struct {
	Messages []model.MessageRecord
	Counts   map[model.MessageStatus]int
}

// BuildReport loads journal rows matching filter.
func BuildReport(ctx context.Context, j Journal, filter model.MessageFilter) (Report, error) {
	msgs, err := j.ListMessages(ctx, filter)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list messages: %w", err)
	}
	counts := make(map[model.MessageStatus]int)
	for _, m := range msgs {
		counts[m.Status]++
	}
	return Report{Messages: msgs, Counts: counts}, nil
}

const previewWidth = 32

// Render writes the journal table followed by per-status totals.
func Render(w io.Writer, r Report) error {
	if len(r.Messages) == 0 {
		_, err := fmt.Fprintln(w, "No messages.")
		return err
	}
	headers := []string{"When", "Status", "From", "Email", "Message", "Error"}
	rows := make([][]string, 0, len(r.Messages))
	for _, m := range r.Messages {
		rows = append(rows, []string{
			m.CreatedAt.Local().Format("2006-01-02 15:04"),
			string(m.Status),
			m.Name,
			m.Email,
			preview(m.Body, previewWidth),
			preview(m.Error, previewWidth),
		})
	}
	lines := formatTable(headers, rows, nil)
	lines = append(lines, "", fmt.Sprintf("sent: %d  failed: %d  timeout: %d",
		r.Counts[model.StatusSent], r.Counts[model.StatusFailed], r.Counts[model.StatusTimeout]))
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// preview flattens s to one line of at most width cells.
func preview(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if displayWidth(s) <= width {
		return s
	}
	return truncateWidth(s, width-1) + "…"
}
