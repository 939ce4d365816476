package sim

import (
	"fmt"

	"github.com/Yousifus/particle-life-app-sub000/components"
)

// SetTypeCount reshapes the population so that exactly target[t] particles
// have type t. The new particle count is the sum of target.
//
// Existing slots are reused where their type still fits: after a shuffle,
// one two-pointer pass moves every particle whose type is still wanted to the
// front. Slots that cannot be reused, including freshly appended ones, are
// retyped to the first type still short of its target and re-placed.
func (p *Physics) SetTypeCount(target []int) error {
	nTypes := p.Settings.MatrixSize()
	if len(target) != nTypes {
		return fmt.Errorf("%w: got %d type counts, matrix size is %d", ErrInvalidArgument, len(target), nTypes)
	}
	total := 0
	for t, c := range target {
		if c < 0 {
			return fmt.Errorf("%w: negative count %d for type %d", ErrInvalidArgument, c, t)
		}
		total += c
	}

	p.shuffle()

	if total == len(p.Particles) {
		p.retypeSurplus(target)
		return nil
	}

	ps := p.Particles
	kept := make([]int, nTypes)
	i, j := 0, len(ps)-1
	for i <= j {
		t := ps[i].Type
		if t >= 0 && t < nTypes && kept[t] < target[t] {
			kept[t]++
			i++
			continue
		}
		ps[i], ps[j] = ps[j], ps[i]
		j--
	}
	// [0, i) is reusable as is

	next := make([]components.Particle, total)
	copy(next, ps[:min(total, len(ps))])

	for k := i; k < total; k++ {
		t := firstDeficit(kept, target)
		next[k].Type = t
		p.place(&next[k], nTypes)
		kept[t]++
	}

	p.Particles = next
	return nil
}

// retypeSurplus handles the equal-total case: particles of over-represented
// types are moved to the first under-represented type. Positions are kept.
func (p *Physics) retypeSurplus(target []int) {
	counts := p.TypeCount()
	for i := range p.Particles {
		pt := &p.Particles[i]
		if counts[pt.Type] <= target[pt.Type] {
			continue
		}
		t := firstDeficit(counts, target)
		counts[pt.Type]--
		pt.Type = t
		counts[t]++
	}
}

// SetTypeCountEqual spreads the current particles evenly over all types:
// ceil(n/k) for each but the last type, which takes what is left.
func (p *Physics) SetTypeCountEqual() error {
	nTypes := p.Settings.MatrixSize()
	if nTypes < 2 {
		return nil
	}
	return p.SetTypeCount(EqualTypeCount(len(p.Particles), nTypes))
}

// EqualTypeCount returns the even split SetTypeCountEqual uses.
// When n is small the trailing types may get zero.
func EqualTypeCount(n, nTypes int) []int {
	counts := make([]int, nTypes)
	if nTypes == 0 {
		return counts
	}
	per := (n + nTypes - 1) / nTypes
	left := n
	for t := range counts {
		c := min(per, left)
		if t == nTypes-1 {
			c = left
		}
		counts[t] = c
		left -= c
	}
	return counts
}

// firstDeficit returns the first type whose count is below target, or -1.
func firstDeficit(counts, target []int) int {
	for t := range target {
		if counts[t] < target[t] {
			return t
		}
	}
	return -1
}
