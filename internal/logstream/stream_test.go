package logstream

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamSubscribeAndCancel(t *testing.T) {
	s := New()
	var first, second []string

	cancelFirst := s.Subscribe(func(e Entry) { first = append(first, e.Message) })
	s.Subscribe(func(e Entry) { second = append(second, e.Message) })
	require.Equal(t, 2, s.Len())

	s.Publish(Entry{Message: "one"})
	cancelFirst()
	cancelFirst()
	s.Publish(Entry{Message: "two"})

	assert.Equal(t, []string{"one"}, first)
	assert.Equal(t, []string{"one", "two"}, second)
	assert.Equal(t, 1, s.Len())
}

func TestStreamPublishStampsTime(t *testing.T) {
	s := New()
	var got Entry
	s.Subscribe(func(e Entry) { got = e })

	s.Publish(Entry{Message: "x", Severity: SeverityWarning})
	assert.False(t, got.Time.IsZero())
}

func TestEntryString(t *testing.T) {
	e := Entry{Message: "boom", Severity: SeverityError, Time: time.Date(2026, 1, 2, 13, 4, 5, 0, time.UTC)}
	assert.Equal(t, "Error | 13:04:05 | boom", e.String())
}

func TestBufferDropsOldest(t *testing.T) {
	b := NewBuffer(3)
	for _, msg := range []string{"a", "b", "c", "d", "e"} {
		b.Append(Entry{Message: msg})
	}

	require.Equal(t, 3, b.Len())
	visible := b.Visible()
	assert.Equal(t, "c", visible[0].Message)
	assert.Equal(t, "e", visible[2].Message)

	b.SetMax(2)
	visible = b.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "d", visible[0].Message)
}

func TestBufferHoldResume(t *testing.T) {
	b := NewBuffer(10)
	b.Append(Entry{Message: "before"})
	b.Hold()
	b.Append(Entry{Message: "during"})

	require.True(t, b.Held())
	require.Len(t, b.Visible(), 1)
	assert.Equal(t, 2, b.Len())

	b.Resume()
	require.Len(t, b.Visible(), 2)

	b.Clear()
	assert.Empty(t, b.Text())
}

func TestBufferConcurrentAppend(t *testing.T) {
	b := NewBuffer(10)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				b.Append(Entry{Message: "x"})
				_ = b.Visible()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, b.Len())
}
