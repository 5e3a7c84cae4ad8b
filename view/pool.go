package view

// Pool keeps released views per Kind for reuse.
type Pool struct {
	factory Factory
	free    map[Kind][]*Handle
	made    int
}

// NewPool returns an empty pool creating views with f.
func NewPool(f Factory) *Pool {
	return &Pool{
		factory: f,
		free:    make(map[Kind][]*Handle),
	}
}

// Factory returns the pool's factory.
func (p *Pool) Factory() Factory { return p.factory }

// Acquire returns a recycled view of kind, or a new one.
func (p *Pool) Acquire(kind Kind) *Handle {
	var h *Handle
	if list := p.free[kind]; len(list) > 0 {
		h = list[len(list)-1]
		p.free[kind] = list[:len(list)-1]
	} else {
		h = &Handle{View: p.factory.MakeView(kind), Kind: kind}
		p.made++
	}
	h.renew()
	h.Alpha = 1
	h.Inserting = false
	return h
}

// Release prepares h for reuse and returns it to the pool.
func (p *Pool) Release(h *Handle) {
	if h == nil {
		return
	}
	h.renew()
	h.View.PrepareForReuse()
	p.free[h.Kind] = append(p.free[h.Kind], h)
}

// Free returns the number of pooled views of kind.
func (p *Pool) Free(kind Kind) int { return len(p.free[kind]) }

// Made returns how many views the pool has created.
func (p *Pool) Made() int { return p.made }
