package action

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cristianoliveira/debugmenu/internal/logging"
)

// KeyPrefix namespaces persisted flag values in the store.
const KeyPrefix = "debugmenu-flag-"

// BooleanLabels are the labels of an on/off flag.
var BooleanLabels = []string{"Off", "On"}

// Store persists integer flag values.
type Store interface {
	GetInt(key string, def int) (int, error)
	SetInt(key string, value int) error
}

// StoreKey returns the namespaced store key of a flag key.
func StoreKey(key string) string {
	return KeyPrefix + key
}

// FlagSpec describes a flag before it is set up.
type FlagSpec struct {
	Base
	Key        string
	Labels     []string
	Default    int
	Persistent bool
}

type flagListener struct {
	id int
	fn func(*Flag)
}

// Flag is an integer value cycling through labels, optionally persisted.
type Flag struct {
	Base

	key        string
	labels     []string
	def        int
	value      int
	persistent bool
	dirty      bool

	store Store
	log   logging.Logger

	mu        sync.Mutex
	listeners []flagListener
	nextID    int
}

// NewFlag creates a flag holding its default value until Setup loads the
// persisted one.
func NewFlag(spec FlagSpec) *Flag {
	labels := spec.Labels
	if len(labels) == 0 {
		labels = BooleanLabels
	}
	return &Flag{
		Base:       spec.Base,
		key:        spec.Key,
		labels:     append([]string(nil), labels...),
		def:        spec.Default,
		value:      spec.Default,
		persistent: spec.Persistent,
		log:        logging.Noop(),
	}
}

// NewBoolFlag creates a persisted on/off flag.
func NewBoolFlag(group, name, key string, def bool) *Flag {
	d := 0
	if def {
		d = 1
	}
	return NewFlag(FlagSpec{Base: Base{Group: group, Name: name}, Key: key, Labels: BooleanLabels, Default: d, Persistent: true})
}

// Setup loads the persisted value. A value differing from the default marks
// the flag dirty so the first listener hears about it.
func (f *Flag) Setup(store Store, log logging.Logger) {
	if log != nil {
		f.log = log
	}
	f.store = store
	f.value = f.def
	f.dirty = false
	if !f.persistent || store == nil {
		return
	}
	v, err := store.GetInt(StoreKey(f.key), f.def)
	if err != nil {
		f.log.Warn("unable to load flag value", "flag", f.key, "error", err)
		return
	}
	if v < 0 || v >= len(f.labels) {
		f.log.Warn("stored flag value out of range", "flag", f.key, "value", v)
		return
	}
	f.value = v
	f.dirty = v != f.def
}

// OnChange subscribes fn to value changes. When invokeIfDirty is set and the
// loaded value differs from the default, fn runs immediately.
func (f *Flag) OnChange(fn func(*Flag), invokeIfDirty bool) (cancel func()) {
	f.mu.Lock()
	f.nextID++
	id := f.nextID
	f.listeners = append(f.listeners, flagListener{id: id, fn: fn})
	f.mu.Unlock()

	if invokeIfDirty && f.dirty {
		fn(f)
	}
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, l := range f.listeners {
			if l.id == id {
				f.listeners = append(f.listeners[:i], f.listeners[i+1:]...)
				return
			}
		}
	}
}

// Notify runs every listener with the current value.
func (f *Flag) Notify() {
	f.mu.Lock()
	listeners := make([]flagListener, len(f.listeners))
	copy(listeners, f.listeners)
	f.mu.Unlock()

	for _, l := range listeners {
		l.fn(f)
	}
}

// SetValue stores v, persists it and notifies listeners when it changed.
func (f *Flag) SetValue(v int, notify bool) bool {
	changed := f.value != v
	f.value = v
	f.persist()
	if changed && notify {
		f.Notify()
	}
	return changed
}

// Cycle moves to the next label, wrapping to zero.
func (f *Flag) Cycle(notify bool) bool {
	next := f.value + 1
	if next >= len(f.labels) {
		next = 0
	}
	return f.SetValue(next, notify)
}

// Reset restores the default value.
func (f *Flag) Reset(notify bool) bool {
	return f.SetValue(f.def, notify)
}

func (f *Flag) persist() {
	if !f.persistent || f.store == nil {
		return
	}
	if err := f.store.SetInt(StoreKey(f.key), f.value); err != nil {
		f.log.Error("unable to persist flag value", "flag", f.key, "error", err)
	}
}

// Resolve cycles the value and notifies listeners.
func (f *Flag) Resolve(h Host) {
	f.Cycle(true)
	f.finish(h)
}

// Key returns the flag key.
func (f *Flag) Key() string { return f.key }

// Labels returns the value labels.
func (f *Flag) Labels() []string { return append([]string(nil), f.labels...) }

// Default returns the compiled-in default value.
func (f *Flag) Default() int { return f.def }

// Persistent reports whether the value is written to the store.
func (f *Flag) Persistent() bool { return f.persistent }

// Dirty reports whether the loaded value differed from the default.
func (f *Flag) Dirty() bool { return f.dirty }

// AsInt returns the value.
func (f *Flag) AsInt() int { return f.value }

// AsBool reports whether the value is 1.
func (f *Flag) AsBool() bool { return f.value == 1 }

// Label returns the label of the current value.
func (f *Flag) Label() string {
	if f.value < 0 || f.value >= len(f.labels) {
		return ""
	}
	return f.labels[f.value]
}

// Status renders the current label; "Off" is shown as an off state.
func (f *Flag) Status() Status {
	if f.StatusText != nil {
		return f.Base.Status()
	}
	label := f.Label()
	if label == "" {
		return Status{}
	}
	if label == "Off" {
		return Status{Text: label, Tone: ToneOff}
	}
	return Status{Text: label, Tone: ToneOn}
}

// Description adds the flag key, persistence and labels.
func (f *Flag) Description() string {
	var sb strings.Builder
	sb.WriteString(f.Base.Description())
	if f.key != "" {
		sb.WriteString("Flag Key: " + f.key + "\n")
	}
	sb.WriteString(fmt.Sprintf("Persistence: %t\n", f.persistent))
	if len(f.labels) > 0 {
		sb.WriteString("Flag Values: " + strings.Join(f.labels, " | ") + "\n")
	}
	return sb.String()
}
