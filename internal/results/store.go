/*
PURPOSE:
  Results Store: request -> subcase -> entity -> series, plus the
  per-subcase frequency index. Filled once by a Builder during the
  parse and read-only afterwards.

REQUIREMENTS:
  User-specified:
  - Buckets are created lazily on first insertion and never removed.
  - Frequency responses append one vector per step (arrival order).
  - Static results overwrite the single vector for an entity.
  - Frequencies are indexed per subcase in first-seen order, keyed by
    exact float value.

  Implementation-discovered:
  - Curve export needs to know whether a bucket holds a frequency
    response, so the builder records it per (request, subcase).

ARCHITECTURE INTEGRATION:
  - Filled by: internal/punch (Parser.commit)
  - Read by: internal/engine

ERROR HANDLING:
  - Builder methods cannot fail; the caller validates first.

IMPLEMENTATION RULES:
  - Build() hands the maps over; the builder must not be used after it.

RELATED FILES:
  - internal/results/query.go
*/

package results

import (
	"github.com/daryltucker/pch-reader/internal/model"
)

type frequencyIndex struct {
	index map[float64]int
	order []float64
}

func (fi *frequencyIndex) add(f float64) int {
	if i, ok := fi.index[f]; ok {
		return i
	}
	fi.index[f] = len(fi.order)
	fi.order = append(fi.order, f)
	return fi.index[f]
}

type bucket struct {
	entities          map[int]model.Series
	frequencyResponse bool
}

// Store is the immutable result of a parse.
type Store struct {
	subcases    map[int]struct{}
	data        map[model.RequestType]map[int]*bucket
	frequencies map[int]*frequencyIndex
}

func newStore() *Store {
	return &Store{
		subcases:    make(map[int]struct{}),
		data:        make(map[model.RequestType]map[int]*bucket),
		frequencies: make(map[int]*frequencyIndex),
	}
}

// Builder accumulates results while a file is parsed.
type Builder struct {
	s *Store
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{s: newStore()}
}

// RegisterSubcase records a subcase id seen in a subcase marker.
func (b *Builder) RegisterSubcase(id int) {
	b.s.subcases[id] = struct{}{}
}

// HasSubcase reports whether id was registered.
func (b *Builder) HasSubcase(id int) bool {
	_, ok := b.s.subcases[id]
	return ok
}

func (b *Builder) ensure(req model.RequestType, subcase int) *bucket {
	bySubcase, ok := b.s.data[req]
	if !ok {
		bySubcase = make(map[int]*bucket)
		b.s.data[req] = bySubcase
	}
	bk, ok := bySubcase[subcase]
	if !ok {
		bk = &bucket{entities: make(map[int]model.Series)}
		bySubcase[subcase] = bk
	}
	if _, ok := b.s.frequencies[subcase]; !ok {
		b.s.frequencies[subcase] = &frequencyIndex{index: make(map[float64]int)}
	}
	return bk
}

// Set stores a static result, replacing any earlier vector for the entity.
func (b *Builder) Set(req model.RequestType, subcase, entity int, v model.Vector) {
	bk := b.ensure(req, subcase)
	bk.entities[entity] = model.Series{v}
}

// Append adds one frequency step for the entity and returns the index of
// frequency within the subcase.
func (b *Builder) Append(req model.RequestType, subcase, entity int, frequency float64, v model.Vector) int {
	bk := b.ensure(req, subcase)
	bk.frequencyResponse = true
	idx := b.s.frequencies[subcase].add(frequency)
	bk.entities[entity] = append(bk.entities[entity], v)
	return idx
}

// Build returns the finished store. The builder is empty afterwards.
func (b *Builder) Build() *Store {
	s := b.s
	b.s = newStore()
	return s
}
