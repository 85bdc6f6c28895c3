package world

// Registry is the fixed, read-only set of hotspots defined during construction
type Registry struct {
	ordered []Hotspot
	byName  map[string]int
}

// NewRegistry indexes hotspots by name, keeping definition order
func NewRegistry(hotspots []Hotspot) *Registry {
	r := &Registry{
		ordered: make([]Hotspot, 0, len(hotspots)),
		byName:  make(map[string]int, len(hotspots)),
	}
	for _, h := range hotspots {
		if _, exists := r.byName[h.Name]; exists {
			continue
		}
		r.byName[h.Name] = len(r.ordered)
		r.ordered = append(r.ordered, h)
	}
	return r
}

// Lookup returns the hotspot with the given name
func (r *Registry) Lookup(name string) (Hotspot, bool) {
	if r == nil {
		return Hotspot{}, false
	}
	idx, ok := r.byName[name]
	if !ok {
		return Hotspot{}, false
	}
	return r.ordered[idx], true
}

// All returns a copy of the hotspots in definition order
func (r *Registry) All() []Hotspot {
	if r == nil {
		return nil
	}
	return append([]Hotspot(nil), r.ordered...)
}

// Names returns hotspot names in definition order
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.ordered))
	for i, h := range r.ordered {
		names[i] = h.Name
	}
	return names
}

// Len returns the number of hotspots
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.ordered)
}
