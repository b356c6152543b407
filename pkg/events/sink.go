package events

import (
	"sync"

	"github.com/rs/zerolog"
)

// Sink receives events.
type Sink interface {
	Emit(e Event)
}

// LogSink writes each event as one structured log line.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Emit(e Event) {
	s.log.Info().Str("event", string(e.Kind())).Interface("data", e).Msg("engine event")
}

// Recorder keeps events in memory in emission order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of everything emitted so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Fanout emits to every sink in order.
type Fanout []Sink

func (f Fanout) Emit(e Event) {
	for _, s := range f {
		s.Emit(e)
	}
}
