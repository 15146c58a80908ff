package action

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cristianoliveira/debugmenu/internal/logging"
	"github.com/cristianoliveira/debugmenu/internal/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	visible  bool
	opened   int
	closed   int
	requests []InputRequest
	logs     bytes.Buffer
	logger   logging.Logger
}

func newFakeHost(visible bool) *fakeHost {
	h := &fakeHost{visible: visible}
	h.logger = logging.NewWriter(&h.logs, logging.Config{Level: "debug"})
	return h
}

func (h *fakeHost) MenuVisible() bool { return h.visible }
func (h *fakeHost) OpenMenu()         { h.visible = true; h.opened++ }
func (h *fakeHost) CloseMenu()        { h.visible = false; h.closed++ }
func (h *fakeHost) RequestInput(req InputRequest) {
	h.requests = append(h.requests, req)
}
func (h *fakeHost) Logger() logging.Logger { return h.logger }

type mapStore struct {
	values map[string]int
	getErr error
	setErr error
}

func newMapStore() *mapStore { return &mapStore{values: map[string]int{}} }

func (s *mapStore) GetInt(key string, def int) (int, error) {
	if s.getErr != nil {
		return def, s.getErr
	}
	if v, ok := s.values[key]; ok {
		return v, nil
	}
	return def, nil
}

func (s *mapStore) SetInt(key string, v int) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = v
	return nil
}

func TestButtonClosesMenuWhenConfigured(t *testing.T) {
	h := newFakeHost(true)
	calls := 0
	b := NewButton("Application", "Quit", func() { calls++ })

	b.Resolve(h)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, h.closed)
	assert.False(t, b.CanDisplay())

	b.CloseMenuAfterTrigger = true
	b.Resolve(h)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, h.closed)
	assert.True(t, b.CanDisplay())
}

func TestBaseDescriptionAndStatus(t *testing.T) {
	b := NewButton("", "Ping", nil)
	assert.Equal(t, Status{}, b.Status())
	assert.Empty(t, b.Description())

	b.Notes = "Sends a ping"
	b.ShortcutKey = "p"
	b.StatusText = func() string { return "3 sent" }
	assert.Equal(t, "Description:\nSends a ping\nShortcut Key: p\n", b.Description())
	assert.Equal(t, Status{Text: "3 sent"}, b.Status())
}

func TestToggleProxiesState(t *testing.T) {
	h := newFakeHost(true)
	state := false
	tg := NewToggle("Logger", "Verbose", func() bool { return state }, func(v bool) { state = v })

	assert.Equal(t, Status{Text: "Off", Tone: ToneOff}, tg.Status())
	tg.Resolve(h)
	assert.True(t, state)
	assert.Equal(t, Status{Text: "On", Tone: ToneOn}, tg.Status())

	state = false
	tg.Resolve(h)
	assert.True(t, state)
}

func TestSwitchRunsCallbacks(t *testing.T) {
	h := newFakeHost(true)
	var events []string
	sw := NewSwitch("", "Overlay", false, func() { events = append(events, "on") }, func() { events = append(events, "off") })

	sw.Resolve(h)
	sw.Resolve(h)
	assert.Equal(t, []string{"on", "off"}, events)
	assert.False(t, sw.IsOn())
}

func TestEnumWraps(t *testing.T) {
	h := newFakeHost(true)
	v := 1
	e := NewEnum("", "Quality", []string{"Low", "High"}, func() int { return v }, func(n int) { v = n })

	assert.Equal(t, Status{Text: "High", Tone: ToneOn}, e.Status())
	e.Resolve(h)
	assert.Equal(t, 0, v)
	e.Resolve(h)
	assert.Equal(t, 1, v)

	v = 9
	assert.Equal(t, Status{}, e.Status())
}

func TestFlagSetupLoadsPersistedValue(t *testing.T) {
	store := newMapStore()
	store.values[StoreKey("tick")] = 2
	f := NewFlag(FlagSpec{Key: "tick", Labels: []string{"Default", "30", "60"}, Persistent: true})

	f.Setup(store, logging.Noop())
	assert.Equal(t, 2, f.AsInt())
	assert.Equal(t, "60", f.Label())
	assert.True(t, f.Dirty())

	var heard []int
	f.OnChange(func(fl *Flag) { heard = append(heard, fl.AsInt()) }, true)
	assert.Equal(t, []int{2}, heard)
}

func TestFlagSetupIgnoresOutOfRange(t *testing.T) {
	store := newMapStore()
	store.values[StoreKey("size")] = 5
	f := NewFlag(FlagSpec{Key: "size", Labels: []string{"Small", "Medium"}, Default: 1, Persistent: true})

	f.Setup(store, nil)
	assert.Equal(t, 1, f.AsInt())
	assert.False(t, f.Dirty())
}

func TestFlagSetupStoreError(t *testing.T) {
	store := newMapStore()
	store.getErr = errors.New("locked")
	f := NewBoolFlag("", "Show Logger", "show-logger", true)

	f.Setup(store, nil)
	assert.True(t, f.AsBool())
	assert.False(t, f.Dirty())
}

func TestFlagCyclePersistsAndNotifies(t *testing.T) {
	h := newFakeHost(true)
	store := newMapStore()
	f := NewBoolFlag("Logger", "Show Logger", "show-logger", false)
	f.Setup(store, nil)

	notified := 0
	cancel := f.OnChange(func(*Flag) { notified++ }, true)
	assert.Equal(t, 0, notified)

	f.Resolve(h)
	assert.True(t, f.AsBool())
	assert.Equal(t, 1, store.values[StoreKey("show-logger")])
	assert.Equal(t, 1, notified)

	assert.False(t, f.SetValue(1, true))
	assert.Equal(t, 1, notified)

	assert.True(t, f.Reset(false))
	assert.Equal(t, 1, notified)
	assert.Equal(t, 0, store.values[StoreKey("show-logger")])

	cancel()
	f.Cycle(true)
	assert.Equal(t, 1, notified)
}

func TestFlagNonPersistentSkipsStore(t *testing.T) {
	store := newMapStore()
	f := NewFlag(FlagSpec{Key: "volatile"})
	f.Setup(store, nil)

	f.Cycle(false)
	assert.Empty(t, store.values)
	assert.Equal(t, Status{Text: "On", Tone: ToneOn}, f.Status())
}

func TestFlagPersistErrorIsLogged(t *testing.T) {
	h := newFakeHost(true)
	store := newMapStore()
	store.setErr = errors.New("disk full")
	f := NewBoolFlag("", "X", "x", false)
	f.Setup(store, h.Logger())

	f.Cycle(false)
	assert.True(t, f.AsBool())
	assert.Contains(t, h.logs.String(), "unable to persist flag value")
}

func TestFlagDescription(t *testing.T) {
	f := NewFlag(FlagSpec{Base: Base{Notes: "Panel size"}, Key: "height", Labels: []string{"Small", "Large"}, Persistent: true})
	assert.Equal(t,
		"Description:\nPanel size\nFlag Key: height\nPersistence: true\nFlag Values: Small | Large\n",
		f.Description())
}

func TestInputResolveOpensMenuAndRequests(t *testing.T) {
	h := newFakeHost(false)
	q := param.MustQuery(
		param.Spec{Name: "name", Type: param.String, Prefill: func() any { return "bob" }},
		param.Spec{Name: "count", Type: param.Int, Default: 1, Prefill: func() any { return 3 }},
	)
	var got *param.Response
	in := NewInput("Application", "Spawn", q, func(r *param.Response) { got = r })

	in.Resolve(h)
	assert.Equal(t, 1, h.opened)
	require.Len(t, h.requests, 1)
	req := h.requests[0]
	assert.Equal(t, "Spawn", req.Title)
	assert.Equal(t, "<name> <count>", req.Prompt)
	assert.Equal(t, `"bob" 3`, req.Prefill)

	req.Submit(`"big bob" 4`)
	require.NotNil(t, got)
	assert.Equal(t, "big bob", got.String("name"))
	assert.Equal(t, 4, got.Int("count"))
	assert.Same(t, got, in.LastResponse())
}

func TestInputHandleRejectsCountMismatch(t *testing.T) {
	h := newFakeHost(true)
	called := false
	in := NewInput("", "Add", param.MustQuery(
		param.Spec{Name: "a", Type: param.Int},
		param.Spec{Name: "b", Type: param.Int},
	), func(*param.Response) { called = true })
	in.CloseMenuAfterTrigger = true

	err := in.Handle(h, "1")
	require.ErrorIs(t, err, param.ErrTooFewArguments)
	err = in.Handle(h, "1 2 3")
	require.ErrorIs(t, err, param.ErrTooManyArguments)

	assert.False(t, called)
	assert.Equal(t, 0, h.closed)
	assert.Nil(t, in.LastResponse())
}

func TestInputHandleInvalidValue(t *testing.T) {
	h := newFakeHost(true)
	called := false
	in := NewInput("", "Seed", param.MustQuery(param.Spec{Name: "seed", Type: param.Int}), func(*param.Response) { called = true })

	err := in.Handle(h, "abc")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, called)
	assert.Contains(t, h.logs.String(), "input not valid")
}

func TestInputHandleCoercionFallsBack(t *testing.T) {
	h := newFakeHost(true)
	var got *param.Response
	in := NewInput("", "Speed", param.MustQuery(param.Spec{Name: "speed", Type: param.Float, Default: 1.5}), func(r *param.Response) { got = r })

	require.NoError(t, in.Handle(h, "fast"))
	require.NotNil(t, got)
	assert.Equal(t, 1.5, got.Float("speed"))
	assert.Len(t, got.Warnings(), 1)
}

func TestInputDescription(t *testing.T) {
	in := NewInput("", "Clear", param.MustQuery(param.Spec{Name: "confirm", Type: param.String, Description: "type clear"}), nil)
	assert.False(t, in.CanDisplay())
	assert.Contains(t, in.Description(), "Input Params:\nconfirm: String (type clear)\n")

	assert.Empty(t, NewInput("", "Empty", nil, nil).Description())
}
