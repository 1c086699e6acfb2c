package store

// LiveCollection is a query-result handle over one entity type. It
// holds no data of its own: every read reflects the store's committed
// state at call time, so a consumer can keep the handle and observe
// mutations without re-querying. Updates propagate synchronously, as a
// side effect of a Write on the same goroutine.
type LiveCollection struct {
	store    *Store
	typeName string
}

// Type returns the entity type this collection tracks.
func (c *LiveCollection) Type() string { return c.typeName }

// Len returns the current number of entities.
func (c *LiveCollection) Len() int {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	return len(c.store.data[c.typeName])
}

// All returns a snapshot of the collection in insertion order. The
// returned entities are copies; mutating them does not touch the store.
func (c *LiveCollection) All() []Entity {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	ids := c.store.order[c.typeName]
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := c.store.data[c.typeName][id]; ok {
			out = append(out, copyEntity(e))
		}
	}
	return out
}
