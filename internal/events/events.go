// Package events defines the presentation-port events emitted by the
// simulation core. The core only publishes; renderers and UI layers consume.
package events

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Type identifies an event category.
type Type string

const (
	// TypeHit is emitted when an attack lands on a target.
	TypeHit Type = "hit"
	// TypeDefeat is emitted once when an entity's health reaches zero.
	TypeDefeat Type = "defeat"
	// TypeHeal is emitted when an entity recovers health.
	TypeHeal Type = "heal"
	// TypeDialog is emitted when an interactable entity speaks a line.
	TypeDialog Type = "dialog"
	// TypeBuffApplied is emitted when a stat buff or debuff is applied.
	TypeBuffApplied Type = "buff_applied"
	// TypeBuffExpired is emitted when a stat buff or debuff lapses.
	TypeBuffExpired Type = "buff_expired"
	// TypeTransition is emitted when the player enters a transition zone.
	TypeTransition Type = "transition"
)

// Event is a single presentation notification.
type Event struct {
	Type   Type
	Actor  string // ID of the entity that caused the event
	Target string // ID of the affected entity, if any
	Amount float64
	Text   string
	At     time.Time
}

// Sink receives simulation events.
type Sink interface {
	Publish(ev Event)
}

// NopSink discards all events.
type NopSink struct{}

// Publish implements Sink.
func (NopSink) Publish(Event) {}

// MultiSink fans events out to multiple sinks in order.
type MultiSink []Sink

// Publish implements Sink.
func (m MultiSink) Publish(ev Event) {
	for _, s := range m {
		s.Publish(ev)
	}
}

// LogSink writes every event as a structured log entry. Useful for
// headless sessions where no renderer consumes the stream.
type LogSink struct {
	Logger *logrus.Logger
}

// Publish implements Sink.
func (l LogSink) Publish(ev Event) {
	if l.Logger == nil {
		return
	}
	l.Logger.WithFields(logrus.Fields{
		"event":  string(ev.Type),
		"actor":  ev.Actor,
		"amount": ev.Amount,
		"text":   ev.Text,
	}).Info("simulation event")
}

// Recorder is a sink that keeps every published event. Intended for tests
// and for UI layers that render a scrolling message log.
type Recorder struct {
	Events []Event
}

// Publish implements Sink.
func (r *Recorder) Publish(ev Event) {
	r.Events = append(r.Events, ev)
}

// Recent returns up to n most recent events, newest last.
func (r *Recorder) Recent(n int) []Event {
	if n <= 0 || len(r.Events) == 0 {
		return nil
	}
	if len(r.Events) <= n {
		return r.Events
	}
	return r.Events[len(r.Events)-n:]
}
