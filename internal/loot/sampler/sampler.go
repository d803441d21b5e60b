// Package sampler implements the weighted-probability draw primitive the
// loot engine selects containers, spawn points, and item keys with.
package sampler

import (
	"github.com/tetrisdev/SPTServer/internal/errors"
	"github.com/tetrisdev/SPTServer/internal/pkg/random"
)

// ErrEmptyPool is returned when a draw is requested from a pool with no
// drawable entries (empty, or every weight zero). Callers that required a
// non-empty result treat it as fatal; optional draws absorb it.
var ErrEmptyPool = errors.FailedPrecondition("weighted pool has no drawable entries")

// Entry is one weighted candidate. Weights below zero are treated as zero;
// zero-weight entries are never selected by a proportional draw.
type Entry[T comparable] struct {
	Value  T
	Weight float64
}

// Pool is an ordered weighted pool. Draws are proportional to weight over
// the remaining entries; draws without replacement consume entries. A Pool
// is owned by a single generation pass and is not safe for concurrent use.
type Pool[T comparable] struct {
	entries []Entry[T]
	rnd     random.Source
}

// New creates a pool over a copy of the given entries.
func New[T comparable](rnd random.Source, entries []Entry[T]) *Pool[T] {
	copied := make([]Entry[T], len(entries))
	copy(copied, entries)
	return &Pool[T]{entries: copied, rnd: rnd}
}

// Len returns the number of entries remaining in the pool.
func (p *Pool[T]) Len() int {
	return len(p.entries)
}

// Add puts an entry back into the pool. The static placer uses this to
// exempt currency denominations from the duplicate lock.
func (p *Pool[T]) Add(e Entry[T]) {
	p.entries = append(p.entries, e)
}

// Remove deletes every entry whose value equals v.
func (p *Pool[T]) Remove(v T) {
	kept := p.entries[:0]
	for _, e := range p.entries {
		if e.Value != v {
			kept = append(kept, e)
		}
	}
	p.entries = kept
}

func (p *Pool[T]) totalWeight() float64 {
	var total float64
	for _, e := range p.entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	return total
}

// pick selects an index proportionally to positive weights. Returns -1 when
// nothing is drawable.
func (p *Pool[T]) pick() int {
	total := p.totalWeight()
	if total <= 0 {
		return -1
	}

	r := p.rnd.Float64() * total
	for i, e := range p.entries {
		if e.Weight <= 0 {
			continue
		}
		r -= e.Weight
		if r < 0 {
			return i
		}
	}
	// Float accumulation can leave r at a hair above zero; fall back to the
	// last positively weighted entry.
	for i := len(p.entries) - 1; i >= 0; i-- {
		if p.entries[i].Weight > 0 {
			return i
		}
	}
	return -1
}

func (p *Pool[T]) removeAt(i int) Entry[T] {
	e := p.entries[i]
	p.entries = append(p.entries[:i], p.entries[i+1:]...)
	return e
}

// TakeOne draws one entry proportionally and removes it from the pool,
// returning the full entry so callers can re-insert it.
func (p *Pool[T]) TakeOne() (Entry[T], error) {
	i := p.pick()
	if i < 0 {
		var zero Entry[T]
		return zero, ErrEmptyPool
	}
	return p.removeAt(i), nil
}

// DrawOne draws a single value proportionally without replacement.
func (p *Pool[T]) DrawOne() (T, error) {
	e, err := p.TakeOne()
	if err != nil {
		var zero T
		return zero, err
	}
	return e.Value, nil
}

// DrawOneAny is the always-include path used for forced items: it draws
// proportionally, but when every remaining weight is zero it falls back to a
// uniform draw over the remaining entries instead of failing.
func (p *Pool[T]) DrawOneAny() (T, error) {
	if i := p.pick(); i >= 0 {
		return p.removeAt(i).Value, nil
	}
	if len(p.entries) == 0 {
		var zero T
		return zero, ErrEmptyPool
	}
	return p.removeAt(p.rnd.IntN(len(p.entries))).Value, nil
}

// Draw draws up to n values. Without replacement, drawn entries are consumed
// and the result may be shorter than n once the pool runs out of drawable
// entries; the caller is expected to log the shortfall. With replacement,
// every draw sees the full pool. A pool with no drawable entries fails with
// ErrEmptyPool.
func (p *Pool[T]) Draw(n int, withReplacement bool) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	if p.totalWeight() <= 0 {
		return nil, ErrEmptyPool
	}

	out := make([]T, 0, n)
	for len(out) < n {
		i := p.pick()
		if i < 0 {
			break
		}
		if withReplacement {
			out = append(out, p.entries[i].Value)
		} else {
			out = append(out, p.removeAt(i).Value)
		}
	}
	return out, nil
}
