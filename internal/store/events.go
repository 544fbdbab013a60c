package store

import (
	"context"
	"time"
)

type ChangeKind string

const (
	ChangeInitialized       ChangeKind = "initialized"
	ChangeDevicePower       ChangeKind = "device_power"
	ChangeDeviceAutomatic   ChangeKind = "device_automatic"
	ChangeAlertAcknowledged ChangeKind = "alert_acknowledged"
	ChangeSensorReading     ChangeKind = "sensor_reading"
)

// ChangeEvent describes one effective mutation.
type ChangeEvent struct {
	Kind  ChangeKind `json:"kind"`
	ID    string     `json:"id,omitempty"`
	Actor string     `json:"actor,omitempty"`
	At    time.Time  `json:"at"`
}

// Listener is called synchronously after each change, outside the store lock.
type Listener func(ChangeEvent)

// Subscribe registers fn for all future change events.
func (s *Store) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	s.listenersMu.Lock()
	s.listeners = append(s.listeners, fn)
	s.listenersMu.Unlock()
}

func (s *Store) publish(ctx context.Context, kind ChangeKind, id string) {
	event := ChangeEvent{Kind: kind, ID: id, Actor: ActorFrom(ctx), At: time.Now().UTC()}
	s.listenersMu.RLock()
	listeners := append([]Listener(nil), s.listeners...)
	s.listenersMu.RUnlock()
	for _, fn := range listeners {
		fn(event)
	}
}

type actorKey struct{}

// WithActor attaches the acting user to ctx so change events can name it.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the actor set by WithActor, or "".
func ActorFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	actor, _ := ctx.Value(actorKey{}).(string)
	return actor
}
