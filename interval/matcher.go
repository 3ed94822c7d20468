// Package interval provides an immutable, canonical set of code-point ranges.
//
// A Matcher is the character predicate attached to NFA transitions and DFA
// edges. It is stored as a sorted sequence of disjoint, non-adjacent ranges,
// so two matchers covering the same code points always have the same
// representation. All set operations are merge-style sweeps that run in time
// linear in the combined number of ranges and return a new Matcher; no
// operation mutates its operands.
//
// Example:
//
//	af := interval.Must(interval.FromRange('a', 'f'))
//	cz := interval.Must(interval.FromRange('c', 'z'))
//	fmt.Println(af.Intersect(cz)) // [c-f]
//	fmt.Println(af.Subtract(cz))  // [ab]
package interval

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// MaxRune is the largest code point a Matcher can hold.
const MaxRune = unicode.MaxRune

// Range is an inclusive code-point range [Lo, Hi].
type Range struct {
	Lo rune
	Hi rune
}

// Matcher is an immutable set of code points in canonical form.
//
// The zero value is the empty matcher.
type Matcher struct {
	// ranges is sorted by Lo, disjoint and non-adjacent.
	// It is never modified after construction and may be shared.
	ranges []Range
}

// Empty returns the matcher that matches nothing.
func Empty() Matcher {
	return Matcher{}
}

// All returns the matcher covering the whole code-point domain.
func All() Matcher {
	return Matcher{ranges: []Range{{Lo: 0, Hi: MaxRune}}}
}

// Single returns the matcher for exactly one code point.
// Panics if r is outside the code-point domain.
func Single(r rune) Matcher {
	return Must(FromRange(r, r))
}

// FromRange returns the matcher for the single range [lo, hi].
func FromRange(lo, hi rune) (Matcher, error) {
	if err := validate(lo, hi); err != nil {
		return Matcher{}, err
	}
	return Matcher{ranges: []Range{{Lo: lo, Hi: hi}}}, nil
}

// New builds a canonical matcher from arbitrary ranges.
// Input ranges may be unsorted, overlapping or adjacent; every range must
// satisfy Lo <= Hi and lie within [0, MaxRune].
func New(ranges ...Range) (Matcher, error) {
	if len(ranges) == 0 {
		return Matcher{}, nil
	}
	for _, r := range ranges {
		if err := validate(r.Lo, r.Hi); err != nil {
			return Matcher{}, err
		}
	}

	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b Range) int {
		if c := cmp.Compare(a.Lo, b.Lo); c != 0 {
			return c
		}
		return cmp.Compare(a.Hi, b.Hi)
	})

	out := make([]Range, 0, len(sorted))
	for _, r := range sorted {
		out = appendCoalesce(out, r)
	}
	return Matcher{ranges: out}, nil
}

// Must panics if err is non-nil and returns m otherwise.
func Must(m Matcher, err error) Matcher {
	if err != nil {
		panic(err)
	}
	return m
}

// FromRunePairs builds a matcher from a flat [lo0, hi0, lo1, hi1, ...] slice,
// the layout used by regexp/syntax character classes.
func FromRunePairs(pairs []rune) (Matcher, error) {
	if len(pairs)%2 != 0 {
		return Matcher{}, &InvalidRangeError{Lo: pairs[len(pairs)-1], Hi: -1}
	}
	ranges := make([]Range, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		ranges = append(ranges, Range{Lo: pairs[i], Hi: pairs[i+1]})
	}
	return New(ranges...)
}

// appendCoalesce appends r to a sorted range list, merging it with the last
// range when they overlap or touch. r.Lo must be >= the last range's Lo.
func appendCoalesce(out []Range, r Range) []Range {
	if n := len(out); n > 0 && r.Lo <= out[n-1].Hi+1 {
		if r.Hi > out[n-1].Hi {
			out[n-1].Hi = r.Hi
		}
		return out
	}
	return append(out, r)
}

// IsEmpty reports whether the matcher matches no code point.
func (m Matcher) IsEmpty() bool {
	return len(m.ranges) == 0
}

// IsSingle reports whether the matcher matches exactly one code point.
func (m Matcher) IsSingle() bool {
	return len(m.ranges) == 1 && m.ranges[0].Lo == m.ranges[0].Hi
}

// NumRanges returns the number of canonical ranges.
func (m Matcher) NumRanges() int {
	return len(m.ranges)
}

// Ranges returns a copy of the canonical ranges.
func (m Matcher) Ranges() []Range {
	return slices.Clone(m.ranges)
}

// Len returns the number of code points matched.
func (m Matcher) Len() int {
	n := 0
	for _, r := range m.ranges {
		n += int(r.Hi-r.Lo) + 1
	}
	return n
}

// Min returns the smallest matched code point, or -1 if empty.
func (m Matcher) Min() rune {
	if len(m.ranges) == 0 {
		return -1
	}
	return m.ranges[0].Lo
}

// Max returns the largest matched code point, or -1 if empty.
func (m Matcher) Max() rune {
	if len(m.ranges) == 0 {
		return -1
	}
	return m.ranges[len(m.ranges)-1].Hi
}

// Contains reports whether r is matched.
func (m Matcher) Contains(r rune) bool {
	_, found := slices.BinarySearchFunc(m.ranges, r, func(rng Range, target rune) int {
		switch {
		case rng.Hi < target:
			return -1
		case rng.Lo > target:
			return 1
		default:
			return 0
		}
	})
	return found
}

// Equal reports whether both matchers cover the same code points.
func (m Matcher) Equal(other Matcher) bool {
	return slices.Equal(m.ranges, other.ranges)
}

// Union returns the code points matched by m or other.
func (m Matcher) Union(other Matcher) Matcher {
	if m.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return m
	}

	a, b := m.ranges, other.ranges
	out := make([]Range, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		if j >= len(b) || (i < len(a) && a[i].Lo <= b[j].Lo) {
			out = appendCoalesce(out, a[i])
			i++
		} else {
			out = appendCoalesce(out, b[j])
			j++
		}
	}
	return Matcher{ranges: out}
}

// Intersect returns the code points matched by both m and other.
func (m Matcher) Intersect(other Matcher) Matcher {
	a, b := m.ranges, other.ranges
	var out []Range
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		lo := max(a[i].Lo, b[j].Lo)
		hi := min(a[i].Hi, b[j].Hi)
		if lo <= hi {
			out = append(out, Range{Lo: lo, Hi: hi})
		}
		if a[i].Hi < b[j].Hi {
			i++
		} else {
			j++
		}
	}
	return Matcher{ranges: out}
}

// Subtract returns the code points matched by m but not by other.
func (m Matcher) Subtract(other Matcher) Matcher {
	if m.IsEmpty() || other.IsEmpty() {
		return m
	}

	b := other.ranges
	var out []Range
	j := 0
	for _, r := range m.ranges {
		lo := r.Lo
		for j < len(b) && b[j].Hi < lo {
			j++
		}
		for k := j; k < len(b) && b[k].Lo <= r.Hi; k++ {
			if b[k].Lo > lo {
				out = append(out, Range{Lo: lo, Hi: b[k].Lo - 1})
			}
			lo = b[k].Hi + 1
			if lo > r.Hi {
				break
			}
		}
		if lo <= r.Hi {
			out = append(out, Range{Lo: lo, Hi: r.Hi})
		}
	}
	return Matcher{ranges: out}
}

// Complement returns every code point in the domain not matched by m.
func (m Matcher) Complement() Matcher {
	return All().Subtract(m)
}

// String returns a character-class rendering such as "[a-fx]".
// Printable ASCII is written literally; everything else uses \u{hex}.
func (m Matcher) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for _, r := range m.ranges {
		writeRune(&sb, r.Lo)
		switch {
		case r.Hi == r.Lo:
		case r.Hi == r.Lo+1:
			writeRune(&sb, r.Hi)
		default:
			sb.WriteByte('-')
			writeRune(&sb, r.Hi)
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

func writeRune(sb *strings.Builder, r rune) {
	if r > ' ' && r < 0x7f && !strings.ContainsRune(`[]-\^`, r) {
		sb.WriteRune(r)
		return
	}
	sb.WriteString(`\u{`)
	sb.WriteString(strconv.FormatInt(int64(r), 16))
	sb.WriteByte('}')
}
