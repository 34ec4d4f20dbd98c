package wall

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// DiffSet is the unordered set of coordinates where the two panels differ.
// It only ever shrinks during a round.
type DiffSet struct {
	set mapset.Set[Coord]
}

// NewDiffSet creates a set holding the given coordinates.
func NewDiffSet(coords ...Coord) *DiffSet {
	d := &DiffSet{set: mapset.New[Coord]()}
	for _, c := range coords {
		d.set.Put(c)
	}
	return d
}

func (d *DiffSet) add(c Coord) {
	d.set.Put(c)
}

// Has reports whether c is a remaining difference.
func (d *DiffSet) Has(c Coord) bool {
	if d == nil {
		return false
	}
	return d.set.Has(c)
}

// Remove deletes c and reports whether it was present.
func (d *DiffSet) Remove(c Coord) bool {
	if !d.Has(c) {
		return false
	}
	d.set.Remove(c)
	return true
}

// Len returns the number of remaining differences.
func (d *DiffSet) Len() int {
	if d == nil {
		return 0
	}
	return d.set.Size()
}

// Empty reports whether no differences remain.
func (d *DiffSet) Empty() bool {
	return d.Len() == 0
}

// Sorted returns the coordinates in row-major order.
func (d *DiffSet) Sorted() []Coord {
	if d == nil {
		return nil
	}
	out := make([]Coord, 0, d.set.Size())
	d.set.Each(func(c Coord) {
		out = append(out, c)
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].Less(out[j])
	})
	return out
}

// Clone returns an independent copy of the set.
func (d *DiffSet) Clone() *DiffSet {
	return NewDiffSet(d.Sorted()...)
}
