// Package logstream carries host log messages to the console's logger panel.
package logstream

import (
	"fmt"
	"sync"
	"time"
)

// Severity of a log entry.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "Debug"
	case SeverityInfo:
		return "Log"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Entry is one host log message.
type Entry struct {
	Message    string
	StackTrace string
	Severity   Severity
	Time       time.Time
}

// String renders "Severity | hh:mm:ss | message".
func (e Entry) String() string {
	return fmt.Sprintf("%s | %s | %s", e.Severity, e.Time.Format("15:04:05"), e.Message)
}

type subscriber struct {
	id int
	fn func(Entry)
}

// Stream fans entries out to subscribers in subscription order.
type Stream struct {
	mu     sync.RWMutex
	subs   []subscriber
	nextID int
}

// New creates an empty stream.
func New() *Stream {
	return &Stream{}
}

// Subscribe registers fn and returns a function removing it.
func (s *Stream) Subscribe(fn func(Entry)) (cancel func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish delivers e to every subscriber. A zero Time is set to now.
func (s *Stream) Publish(e Entry) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	s.mu.RLock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, sub := range subs {
		sub.fn(e)
	}
}

// Len returns the number of subscribers.
func (s *Stream) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
