// pkg/entity/registry.go
package entity

import "github.com/JTStephens18/galaxyGPU/pkg/physics"

// Target is a destructible object the anchor can home toward.
type Target struct {
	ID       ID
	Position physics.Vector3
	Health   int
}

// Registry keeps live targets in a compact arena. Removal swaps the last
// element into the hole so the slice stays dense and iteration order-free
// consumers (homing assist) never see stale or nil entries.
type Registry struct {
	targets []Target
	index   map[ID]int
}

// NewRegistry creates an empty target registry
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[ID]int),
	}
}

// Add registers a new live target and returns its ID
func (r *Registry) Add(position physics.Vector3, health int) ID {
	id := GenerateID()
	r.index[id] = len(r.targets)
	r.targets = append(r.targets, Target{ID: id, Position: position, Health: health})
	return id
}

// Remove deletes a target by swapping the last entry into its slot.
// Returns false if the ID is not registered.
func (r *Registry) Remove(id ID) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	last := len(r.targets) - 1
	if i != last {
		r.targets[i] = r.targets[last]
		r.index[r.targets[i].ID] = i
	}
	r.targets = r.targets[:last]
	delete(r.index, id)
	return true
}

// Damage reduces a target's health and reports whether it was destroyed.
// A destroyed target is removed from the registry.
func (r *Registry) Damage(id ID, amount int) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	r.targets[i].Health -= amount
	if r.targets[i].Health <= 0 {
		r.Remove(id)
		return true
	}
	return false
}

// Get returns a target by ID
func (r *Registry) Get(id ID) (Target, bool) {
	i, ok := r.index[id]
	if !ok {
		return Target{}, false
	}
	return r.targets[i], true
}

// Len returns the number of live targets
func (r *Registry) Len() int {
	return len(r.targets)
}

// Positions appends every live target position to dst and returns it.
// Callers reuse dst across frames to avoid per-frame allocation.
func (r *Registry) Positions(dst []physics.Vector3) []physics.Vector3 {
	for i := range r.targets {
		dst = append(dst, r.targets[i].Position)
	}
	return dst
}

// Each calls fn for every live target
func (r *Registry) Each(fn func(Target)) {
	for i := range r.targets {
		fn(r.targets[i])
	}
}
