package sequence

import (
	"log"

	"github.com/gonewx/tween/pkg/tween"
)

// ID identifies a registered sequencer. 0 is reserved for unregistered ones.
type ID uint64

// Registry owns labeled sequencers.
//
// Creating a sequencer with a non-empty label destroys every live sequencer
// with the same label first, so starting a named animation cancels the
// previous run. Destroyed sequencers leave the registry on their own.
type Registry struct {
	clock  Clock
	nextID uint64
	items  map[ID]*Sequencer
	// creation order, for deterministic Clear/ClearAll
	order []ID
}

// NewRegistry creates a registry whose sequencers run on c.
func NewRegistry(c Clock) *Registry {
	return &Registry{
		clock:  c,
		nextID: 1,
		items:  make(map[ID]*Sequencer),
	}
}

// New cancels same-labeled sequencers and registers a fresh one.
func (r *Registry) New(target tween.Target, label string) *Sequencer {
	if label != "" {
		if n := r.Clear(label); n > 0 {
			log.Printf("[Sequence] label %q restarted, cancelled %d sequence(s)", label, n)
		}
	}

	id := ID(r.nextID)
	r.nextID++

	s := New(r.clock, target)
	s.id = id
	s.label = label
	s.registry = r
	r.items[id] = s
	r.order = append(r.order, id)
	return s
}

// To is New followed by To(step).
func (r *Registry) To(target tween.Target, label string, step Step) *Sequencer {
	return r.New(target, label).To(step)
}

// From is New followed by From(step).
func (r *Registry) From(target tween.Target, label string, step Step) *Sequencer {
	return r.New(target, label).From(step)
}

// Get returns the live sequencer with the given id.
func (r *Registry) Get(id ID) (*Sequencer, bool) {
	s, ok := r.items[id]
	return s, ok
}

// ByLabel returns the live sequencers carrying label, oldest first.
func (r *Registry) ByLabel(label string) []*Sequencer {
	var result []*Sequencer
	for _, id := range r.order {
		if s := r.items[id]; s != nil && s.label == label {
			result = append(result, s)
		}
	}
	return result
}

// Len returns the number of live sequencers.
func (r *Registry) Len() int { return len(r.items) }

// Clear destroys every sequencer with the given label and returns how many
// were destroyed.
func (r *Registry) Clear(label string) int {
	victims := r.ByLabel(label)
	for _, s := range victims {
		s.Destroy()
	}
	return len(victims)
}

// ClearAll destroys every registered sequencer.
func (r *Registry) ClearAll() {
	ids := make([]ID, len(r.order))
	copy(ids, r.order)
	for _, id := range ids {
		if s := r.items[id]; s != nil {
			s.Destroy()
		}
	}
}

func (r *Registry) remove(id ID) {
	if _, ok := r.items[id]; !ok {
		return
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}
