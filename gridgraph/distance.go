package gridgraph

import (
	"encoding/json"
	"strconv"
)

// Distance is an optional non-negative hop count. The zero value is unset,
// which keeps "no distance" distinct from a distance of 0.
type Distance struct {
	value int
	set   bool
}

// Unset returns a Distance carrying no value.
func Unset() Distance { return Distance{} }

// At returns a Distance set to d.
func At(d int) Distance { return Distance{value: d, set: true} }

// Value returns the hop count and whether it is set.
func (d Distance) Value() (int, bool) { return d.value, d.set }

// IsSet reports whether a hop count is present.
func (d Distance) IsSet() bool { return d.set }

// Less reports whether both distances are set and d < o.
// An unset operand never compares less, so a walk over unlabelled cells stalls.
func (d Distance) Less(o Distance) bool {
	return d.set && o.set && d.value < o.value
}

// String renders the hop count, or "-" when unset.
func (d Distance) String() string {
	if !d.set {
		return "-"
	}
	return strconv.Itoa(d.value)
}

// MarshalJSON encodes an unset distance as null.
func (d Distance) MarshalJSON() ([]byte, error) {
	if !d.set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(d.value)), nil
}

// UnmarshalJSON decodes null as unset and a number as a set distance.
func (d *Distance) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Unset()
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*d = At(v)
	return nil
}

// Distances maps every cell index of one grid to an optional hop count.
type Distances []Distance

// NewDistances returns an all-unset map sized for g.
func NewDistances(g *Grid) Distances {
	return make(Distances, g.Len())
}

// Get returns the distance at idx, or Unset for an out-of-range idx.
func (d Distances) Get(idx int) Distance {
	if idx < 0 || idx >= len(d) {
		return Unset()
	}
	return d[idx]
}

// Set assigns v to idx. Out-of-range indices are ignored.
func (d Distances) Set(idx, v int) {
	if idx >= 0 && idx < len(d) {
		d[idx] = At(v)
	}
}

// Reset clears the distance at idx.
func (d Distances) Reset(idx int) {
	if idx >= 0 && idx < len(d) {
		d[idx] = Unset()
	}
}

// Clear unsets every distance.
func (d Distances) Clear() {
	for i := range d {
		d[i] = Unset()
	}
}

// Labelled returns how many cells carry a distance.
func (d Distances) Labelled() int {
	n := 0
	for _, v := range d {
		if v.set {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (d Distances) Clone() Distances {
	out := make(Distances, len(d))
	copy(out, d)
	return out
}

// Equal reports whether both maps have the same length and entries.
func (d Distances) Equal(o Distances) bool {
	if len(d) != len(o) {
		return false
	}
	for i := range d {
		if d[i] != o[i] {
			return false
		}
	}
	return true
}
