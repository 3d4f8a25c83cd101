package marker

import (
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// Registry keeps short-lived flags keyed by string, used for transient UI
// state such as "reported" or "copied" acknowledgements on messages.
type Registry struct {
	items cmap.ConcurrentMap[string, time.Time]
	ttl   time.Duration
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		items: cmap.New[time.Time](),
		ttl:   ttl,
	}
}

// Mark sets the flag and schedules its removal after the registry ttl.
// Re-marking an existing key extends the deadline.
func (r *Registry) Mark(key string) {
	deadline := time.Now().Add(r.ttl)
	r.items.Set(key, deadline)

	time.AfterFunc(r.ttl, func() {
		r.items.RemoveCb(key, func(_ string, v time.Time, exists bool) bool {
			return exists && !v.After(deadline)
		})
	})
}

func (r *Registry) IsMarked(key string) bool {
	deadline, ok := r.items.Get(key)
	if !ok {
		return false
	}
	return time.Now().Before(deadline)
}

func (r *Registry) Remove(key string) {
	r.items.Remove(key)
}
