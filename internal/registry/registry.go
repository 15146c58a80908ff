// Package registry keeps the catalog of registered debug actions: the flat
// list in registration order, the grouping tree, the flags and the search
// index over the tree.
package registry

import (
	"fmt"
	"sync"

	"github.com/cristianoliveira/debugmenu/internal/action"
	"github.com/cristianoliveira/debugmenu/internal/logging"
	"github.com/cristianoliveira/debugmenu/internal/search"
	"github.com/cristianoliveira/debugmenu/internal/tree"
	"github.com/google/uuid"
)

// EventKind tells observers how the catalog changed.
type EventKind int

const (
	Added EventKind = iota
	Removed
)

// Event describes one registered or removed action.
type Event struct {
	Kind   EventKind
	Action action.Action
}

type observer struct {
	id int
	fn func(Event)
}

// Registry is the action catalog. It is not safe for concurrent use; callers
// serialize mutations on the tick goroutine.
type Registry struct {
	actions []action.Action
	flags   []*action.Flag
	tree    *tree.Tree
	index   *search.Index

	store action.Store
	log   logging.Logger

	mu        sync.Mutex
	observers []observer
	nextID    int
}

// New creates an empty registry. Flags registered later load their values
// from store.
func New(store action.Store, log logging.Logger) *Registry {
	if log == nil {
		log = logging.Noop()
	}
	t := tree.New()
	return &Registry{
		tree:  t,
		index: search.NewIndex(t, nil),
		store: store,
		log:   log,
	}
}

// Register appends actions in order. A non-empty group overrides the group
// of every action. Actions without an ID get a random one.
func (r *Registry) Register(group string, actions ...action.Action) {
	for _, a := range actions {
		if a == nil {
			continue
		}
		info := a.Info()
		if group != "" {
			info.Group = group
		}
		if info.ID == "" {
			info.ID = uuid.NewString()
		}
		if f, ok := a.(*action.Flag); ok {
			f.Setup(r.store, r.log)
			r.flags = append(r.flags, f)
		}
		r.actions = append(r.actions, a)
		r.tree.AddAction(a)
		r.log.Debug("action registered", "name", info.Name, "group", info.Group, "id", info.ID)
		r.emit(Event{Kind: Added, Action: a})
	}
}

// Unregister removes the given actions by identity.
func (r *Registry) Unregister(actions ...action.Action) error {
	var missing int
	for _, a := range actions {
		if !r.removeWhere(func(x action.Action) bool { return x == a }) {
			missing++
		}
	}
	if missing > 0 {
		r.log.Warn("No action was found for removal", "count", missing)
		return fmt.Errorf("%w: %d action(s)", ErrActionNotFound, missing)
	}
	return nil
}

// UnregisterByID removes every action whose ID is id.
func (r *Registry) UnregisterByID(id string) error {
	if !r.removeWhere(func(a action.Action) bool { return a.Info().ID == id }) {
		r.log.Warn("No action was found for removal", "id", id)
		return fmt.Errorf("%w: id %q", ErrActionNotFound, id)
	}
	return nil
}

// UnregisterByGroup removes every action in group.
func (r *Registry) UnregisterByGroup(group string) error {
	if !r.removeWhere(func(a action.Action) bool { return a.Info().Group == group }) {
		r.log.Warn("No action was found for removal", "group", group)
		return fmt.Errorf("%w: group %q", ErrActionNotFound, group)
	}
	return nil
}

// removeWhere drops matching actions from the list, tree and flags,
// keeping the order of the rest.
func (r *Registry) removeWhere(match func(action.Action) bool) bool {
	kept := r.actions[:0]
	var removed []action.Action
	for _, a := range r.actions {
		if match(a) {
			removed = append(removed, a)
			continue
		}
		kept = append(kept, a)
	}
	for i := len(kept); i < len(r.actions); i++ {
		r.actions[i] = nil
	}
	r.actions = kept

	for _, a := range removed {
		r.tree.RemoveAction(a)
		if f, ok := a.(*action.Flag); ok {
			r.removeFlag(f)
		}
		r.emit(Event{Kind: Removed, Action: a})
	}
	return len(removed) > 0
}

func (r *Registry) removeFlag(f *action.Flag) {
	for i, x := range r.flags {
		if x == f {
			r.flags = append(r.flags[:i], r.flags[i+1:]...)
			return
		}
	}
}

// Actions returns the registered actions in registration order.
func (r *Registry) Actions() []action.Action {
	return append([]action.Action(nil), r.actions...)
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	return len(r.actions)
}

// Flags returns the registered flags in registration order.
func (r *Registry) Flags() []*action.Flag {
	return append([]*action.Flag(nil), r.flags...)
}

// Flag returns the flag registered under key.
func (r *Registry) Flag(key string) (*action.Flag, error) {
	for _, f := range r.flags {
		if f.Key() == key {
			return f, nil
		}
	}
	r.log.Warn("Could not find flag", "key", key)
	return nil, fmt.Errorf("%w: %q", ErrUnknownFlag, key)
}

// ResetFlags restores every flag to its default and returns how many changed.
func (r *Registry) ResetFlags(notify bool) int {
	n := 0
	for _, f := range r.flags {
		if f.Reset(notify) {
			n++
		}
	}
	return n
}

// DispatchShortcut resolves the first action, in registration order, bound
// to key. At most one action runs per call.
func (r *Registry) DispatchShortcut(key string, h action.Host) (action.Action, bool) {
	if key == "" {
		return nil, false
	}
	for _, a := range r.Actions() {
		if a.Info().ShortcutKey == key {
			a.Resolve(h)
			return a, true
		}
	}
	return nil, false
}

// Tree returns the grouping tree.
func (r *Registry) Tree() *tree.Tree {
	return r.tree
}

// Index returns the search index over the tree.
func (r *Registry) Index() *search.Index {
	return r.index
}

// Search returns the leaves matching query.
func (r *Registry) Search(query string) []*tree.Node {
	return r.index.Search(query)
}

// Subscribe registers fn for catalog changes.
func (r *Registry) Subscribe(fn func(Event)) (cancel func()) {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.observers = append(r.observers, observer{id: id, fn: fn})
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			for i, o := range r.observers {
				if o.id == id {
					r.observers = append(r.observers[:i], r.observers[i+1:]...)
					return
				}
			}
		})
	}
}

func (r *Registry) emit(e Event) {
	r.mu.Lock()
	observers := append([]observer(nil), r.observers...)
	r.mu.Unlock()
	for _, o := range observers {
		o.fn(e)
	}
}
