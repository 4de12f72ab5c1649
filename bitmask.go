package hakoniwa

import (
	"strconv"
	"strings"
)

// BitMask is a growable little-endian bit set over 64-bit words. Bit i is set
// iff the owning entity or archetype carries the component type assigned bit i
// by the registry. Masks have value semantics: mutating operations return a
// new mask and never alias the receiver's storage.
//
// The zero value (nil) is the empty mask and is valid for every operation.
type BitMask []uint64

const bitsPerWord = 64

// Set returns a copy of the mask with the given bit enabled. The mask grows
// as needed, so there is no fixed component-type ceiling at this level.
func (m BitMask) Set(bit int) BitMask {
	word := bit / bitsPerWord
	n := len(m)
	if word >= n {
		n = word + 1
	}
	nm := make(BitMask, n)
	copy(nm, m)
	nm[word] |= 1 << (bit % bitsPerWord)
	return nm
}

// Unset returns a copy of the mask with the given bit disabled.
func (m BitMask) Unset(bit int) BitMask {
	word := bit / bitsPerWord
	if word >= len(m) {
		return m.clone()
	}
	nm := m.clone()
	nm[word] &^= 1 << (bit % bitsPerWord)
	return nm
}

// Has reports whether the given bit is set.
func (m BitMask) Has(bit int) bool {
	word := bit / bitsPerWord
	if word >= len(m) {
		return false
	}
	return (m[word] & (1 << (bit % bitsPerWord))) != 0
}

// Or returns the bitwise union of two masks.
func (m BitMask) Or(other BitMask) BitMask {
	n := len(m)
	if len(other) > n {
		n = len(other)
	}
	nm := make(BitMask, n)
	copy(nm, m)
	for i, w := range other {
		nm[i] |= w
	}
	return nm
}

// AndNot returns a copy of the mask with every bit of other cleared.
func (m BitMask) AndNot(other BitMask) BitMask {
	nm := m.clone()
	for i := range nm {
		if i >= len(other) {
			break
		}
		nm[i] &^= other[i]
	}
	return nm
}

// ContainsAll reports whether every bit set in sub is also set in m.
func (m BitMask) ContainsAll(sub BitMask) bool {
	for i, w := range sub {
		if w == 0 {
			continue
		}
		if i >= len(m) || (m[i]&w) != w {
			return false
		}
	}
	return true
}

// Intersects reports whether the two masks share any set bit.
func (m BitMask) Intersects(other BitMask) bool {
	n := len(m)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if m[i]&other[i] != 0 {
			return true
		}
	}
	return false
}

// Equals reports whether the two masks contain exactly the same bits.
// Trailing zero words are ignored, so masks of different word lengths compare
// equal when their set bits agree.
func (m BitMask) Equals(other BitMask) bool {
	long, short := m, other
	if len(other) > len(m) {
		long, short = other, m
	}
	for i := range short {
		if long[i] != short[i] {
			return false
		}
	}
	for i := len(short); i < len(long); i++ {
		if long[i] != 0 {
			return false
		}
	}
	return true
}

// IsEmpty reports whether no bit is set.
func (m BitMask) IsEmpty() bool {
	for _, w := range m {
		if w != 0 {
			return false
		}
	}
	return true
}

// Key returns a canonical string form of the mask, suitable as a map key.
// Masks that compare Equals always produce the same key regardless of
// trailing zero words.
func (m BitMask) Key() string {
	last := len(m) - 1
	for last >= 0 && m[last] == 0 {
		last--
	}
	if last < 0 {
		return "0"
	}
	var b strings.Builder
	for i := 0; i <= last; i++ {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(strconv.FormatUint(m[i], 16))
	}
	return b.String()
}

// String implements fmt.Stringer.
func (m BitMask) String() string {
	return m.Key()
}

func (m BitMask) clone() BitMask {
	if len(m) == 0 {
		return nil
	}
	nm := make(BitMask, len(m))
	copy(nm, m)
	return nm
}
