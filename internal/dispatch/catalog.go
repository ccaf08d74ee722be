package dispatch

import (
	"errors"
	"fmt"

	"flicker/internal/core"
	"flicker/internal/effect"
)

// DefaultWeights biases the show toward the light staying on.
var DefaultWeights = map[effect.Kind]int{
	effect.SteadyOn:      12,
	effect.Dropout:       2,
	effect.Brownout:      2,
	effect.RandomFlicker: 2,
	effect.RampOn:        2,
	effect.RampOff:       1,
	effect.MostlyOn:      2,
	effect.MostlyOff:     1,
	effect.BadWiring:     1,
	effect.SteadyOff:     1,
}

// Catalog is the weighted list effects are sampled from. Weight is realized
// by repeating an entry.
type Catalog struct {
	entries []effect.Kind
}

// NewCatalog creates a catalog from explicit entries. Invalid kinds are skipped.
func NewCatalog(entries ...effect.Kind) *Catalog {
	c := &Catalog{entries: make([]effect.Kind, 0, len(entries))}
	for _, k := range entries {
		if k.Valid() {
			c.entries = append(c.entries, k)
		}
	}
	return c
}

// CatalogFromWeights expands weights into entries in effect declaration
// order, so equal weights always give the same catalog.
func CatalogFromWeights(weights map[effect.Kind]int) *Catalog {
	var entries []effect.Kind
	for _, k := range effect.Kinds() {
		for i := 0; i < weights[k]; i++ {
			entries = append(entries, k)
		}
	}
	return NewCatalog(entries...)
}

// DefaultCatalog returns the catalog built from DefaultWeights.
func DefaultCatalog() *Catalog {
	return CatalogFromWeights(DefaultWeights)
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the catalog entries.
func (c *Catalog) Entries() []effect.Kind {
	result := make([]effect.Kind, len(c.entries))
	copy(result, c.entries)
	return result
}

// Weight returns how many entries name k.
func (c *Catalog) Weight(k effect.Kind) int {
	n := 0
	for _, e := range c.entries {
		if e == k {
			n++
		}
	}
	return n
}

// Sample draws one entry uniformly. An empty catalog yields effect.None.
func (c *Catalog) Sample(rnd core.Random) effect.Kind {
	if len(c.entries) == 0 {
		return effect.None
	}
	return c.entries[rnd.Uniform(0, len(c.entries))]
}

// Refill pushes a full program of sampled effects onto stack and pops the
// first one to run. Overflowing pushes are dropped and reported in the
// returned error; the popped effect is still valid in that case.
func (c *Catalog) Refill(stack *Stack, rnd core.Random) (effect.Kind, bool, error) {
	if len(c.entries) == 0 {
		return effect.None, false, errors.New("refill from empty catalog")
	}

	var overflow error
	dropped := 0
	for i := 0; i < stack.Capacity(); i++ {
		if err := stack.Push(c.Sample(rnd)); err != nil {
			if overflow == nil {
				overflow = err
			}
			dropped++
		}
	}
	if overflow != nil {
		overflow = fmt.Errorf("refill dropped %d effects: %w", dropped, overflow)
	}

	k, ok := stack.Pop()
	return k, ok, overflow
}
