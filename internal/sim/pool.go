package sim

import (
	"sync"

	"github.com/san-kum/bubblenav/internal/bubble"
)

// BodyPool recycles the scratch slices handed to observers.
type BodyPool struct {
	pool sync.Pool
	size int
}

func NewBodyPool(size int) *BodyPool {
	return &BodyPool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				s := make([]bubble.Body, 0, size)
				return &s
			},
		},
	}
}

func (p *BodyPool) Get() []bubble.Body {
	return (*p.pool.Get().(*[]bubble.Body))[:0]
}

func (p *BodyPool) Put(s []bubble.Body) {
	if cap(s) < p.size {
		return
	}
	s = s[:0]
	p.pool.Put(&s)
}
