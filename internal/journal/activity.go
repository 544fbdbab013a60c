package journal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/water-iq/monitor/internal/store"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// timeLayout is fixed width so created_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var ErrClosed = errors.New("journal closed")

// Entry is one recorded operator action.
type Entry struct {
	ID        string           `json:"id"`
	Kind      store.ChangeKind `json:"kind"`
	TargetID  string           `json:"target_id"`
	Actor     string           `json:"actor"`
	CreatedAt time.Time        `json:"created_at"`
}

// recorded lists the change kinds worth journaling. Sampler readings are
// excluded; they arrive on every tick and carry no operator intent.
var recorded = map[store.ChangeKind]bool{
	store.ChangeInitialized:       true,
	store.ChangeDevicePower:       true,
	store.ChangeDeviceAutomatic:   true,
	store.ChangeAlertAcknowledged: true,
}

// Record appends event. Kinds outside the journaled set are ignored.
func (j *Journal) Record(ctx context.Context, event store.ChangeEvent) error {
	if j == nil || j.db == nil {
		return ErrClosed
	}
	if !recorded[event.Kind] {
		return nil
	}
	at := event.At
	if at.IsZero() {
		at = time.Now()
	}
	actor := event.Actor
	if actor == "" {
		actor = "system"
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO activity(id, kind, target_id, actor, created_at)
		VALUES(?, ?, ?, ?, ?)`,
		uuid.NewString(), string(event.Kind), event.ID, actor, at.UTC().Format(timeLayout))
	return err
}

// List returns at most limit entries, newest first.
func (j *Journal) List(ctx context.Context, limit int) ([]Entry, error) {
	if j == nil || j.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)

	rows, err := j.db.QueryContext(ctx, `
		SELECT id, kind, target_id, actor, created_at
		FROM activity
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Entry, 0, limit)
	for rows.Next() {
		var (
			entry     Entry
			kind      string
			createdAt string
		)
		if err := rows.Scan(&entry.ID, &kind, &entry.TargetID, &entry.Actor, &createdAt); err != nil {
			return nil, err
		}
		entry.Kind = store.ChangeKind(kind)
		if ts, err := time.Parse(timeLayout, createdAt); err == nil {
			entry.CreatedAt = ts.UTC()
		}
		items = append(items, entry)
	}
	return items, rows.Err()
}

// Listener adapts the journal to store change notifications. Write failures
// are logged; they never reach the mutation that caused them.
func (j *Journal) Listener() store.Listener {
	return func(event store.ChangeEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := j.Record(ctx, event); err != nil && j.logger != nil {
			j.logger.Warn("journal record failed", "kind", event.Kind, "id", event.ID, "err", err)
		}
	}
}
