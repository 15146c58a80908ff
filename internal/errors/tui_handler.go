package errors

import (
	"sync"
	"time"
)

// DefaultMaxMessages bounds the history kept by a TUIHandler.
const DefaultMaxMessages = 50

// TUIHandler handles errors by storing them for the console status line.
type TUIHandler struct {
	mu        sync.RWMutex
	messages  []Message
	max       int
	onMessage func(msg Message)
	now       func() time.Time
}

// Message is one stored outcome.
type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

// MessageType classifies a Message.
type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeError:
		return "error"
	case MessageTypeWarning:
		return "warning"
	case MessageTypeInfo:
		return "info"
	case MessageTypeSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// NewTUIHandler creates a handler calling onMessage for every new message.
func NewTUIHandler(onMessage func(msg Message)) *TUIHandler {
	return &TUIHandler{
		max:       DefaultMaxMessages,
		onMessage: onMessage,
		now:       time.Now,
	}
}

// SetClock replaces the timestamp source.
func (h *TUIHandler) SetClock(now func() time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.now = now
}

func (h *TUIHandler) Error(msg string)   { h.addMessage(msg, MessageTypeError) }
func (h *TUIHandler) Warning(msg string) { h.addMessage(msg, MessageTypeWarning) }
func (h *TUIHandler) Info(msg string)    { h.addMessage(msg, MessageTypeInfo) }
func (h *TUIHandler) Success(msg string) { h.addMessage(msg, MessageTypeSuccess) }

func (h *TUIHandler) addMessage(msg string, msgType MessageType) {
	h.mu.Lock()
	message := Message{Text: msg, Type: msgType, Timestamp: h.now()}
	h.messages = append(h.messages, message)
	if over := len(h.messages) - h.max; over > 0 {
		h.messages = append(h.messages[:0], h.messages[over:]...)
	}
	onMessage := h.onMessage
	h.mu.Unlock()

	if onMessage != nil {
		onMessage(message)
	}
}

// GetLatest returns the newest message.
func (h *TUIHandler) GetLatest() (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.messages) == 0 {
		return Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}

// Current returns the newest message if it is younger than ttl at now.
func (h *TUIHandler) Current(now time.Time, ttl time.Duration) (Message, bool) {
	msg, ok := h.GetLatest()
	if !ok || now.Sub(msg.Timestamp) > ttl {
		return Message{}, false
	}
	return msg, true
}

// Clear drops every message.
func (h *TUIHandler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}

// GetAll returns a copy of the stored messages, oldest first.
func (h *TUIHandler) GetAll() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()

	copied := make([]Message, len(h.messages))
	copy(copied, h.messages)
	return copied
}
