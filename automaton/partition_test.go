package automaton

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/coredfa/interval"
)

// labelBuilder carries a sorted label set as its payload.
type labelBuilder struct {
	matcher interval.Matcher
	labels  []string
}

var _ TransitionBuilder[[]string, *labelBuilder] = (*labelBuilder)(nil)

func newLabel(m interval.Matcher, labels ...string) *labelBuilder {
	return &labelBuilder{matcher: m, labels: labels}
}

func (b *labelBuilder) Matcher() interval.Matcher     { return b.matcher }
func (b *labelBuilder) SetMatcher(m interval.Matcher) { b.matcher = m }
func (b *labelBuilder) TransitionSet() []string       { return b.labels }

func (b *labelBuilder) CreateMerged(other *labelBuilder, merged interval.Matcher) *labelBuilder {
	return &labelBuilder{matcher: merged, labels: unionLabels(b.labels, other.labels)}
}

func (b *labelBuilder) MergeInPlace(other *labelBuilder, merged interval.Matcher) {
	b.labels = unionLabels(b.labels, other.labels)
	b.matcher = merged
}

func unionLabels(a, b []string) []string {
	out := append(slices.Clone(a), b...)
	slices.Sort(out)
	return slices.Compact(out)
}

func rng(lo, hi rune) interval.Matcher {
	return interval.Must(interval.FromRange(lo, hi))
}

func TestPartition_Scenario(t *testing.T) {
	in := []*labelBuilder{
		newLabel(rng('a', 'f'), "t1"),
		newLabel(rng('a', 'f'), "t2"),
		newLabel(rng('c', 'z'), "t3"),
	}

	out := Partition[[]string](in)

	require.Len(t, out, 3)
	assert.Equal(t, "[ab]", out[0].Matcher().String())
	assert.Equal(t, []string{"t1", "t2"}, out[0].TransitionSet())
	assert.Equal(t, "[c-f]", out[1].Matcher().String())
	assert.Equal(t, []string{"t1", "t2", "t3"}, out[1].TransitionSet())
	assert.Equal(t, "[g-z]", out[2].Matcher().String())
	assert.Equal(t, []string{"t3"}, out[2].TransitionSet())

	// Inputs are untouched.
	assert.Equal(t, "[a-f]", in[0].Matcher().String())
	assert.Equal(t, []string{"t1"}, in[0].TransitionSet())
	assert.Equal(t, "[c-z]", in[2].Matcher().String())
}

func TestPartition_NonContiguousFragment(t *testing.T) {
	in := []*labelBuilder{
		newLabel(interval.Must(interval.New(interval.Range{Lo: 'a', Hi: 'c'}, interval.Range{Lo: 'x', Hi: 'z'})), "t1"),
		newLabel(rng('m', 'n'), "t2"),
	}

	out := Partition[[]string](in)

	require.Len(t, out, 2)
	assert.Equal(t, "[a-cx-z]", out[0].Matcher().String())
	assert.Equal(t, []string{"t1"}, out[0].TransitionSet())
	assert.Equal(t, "[mn]", out[1].Matcher().String())
}

func TestPartition_EdgeCases(t *testing.T) {
	t.Run("no input", func(t *testing.T) {
		assert.Empty(t, Partition[[]string]([]*labelBuilder(nil)))
	})

	t.Run("empty matcher dropped", func(t *testing.T) {
		out := Partition[[]string]([]*labelBuilder{
			newLabel(interval.Empty(), "t1"),
			newLabel(rng('a', 'a'), "t2"),
		})
		require.Len(t, out, 1)
		assert.Equal(t, []string{"t2"}, out[0].TransitionSet())
	})

	t.Run("single input is copied", func(t *testing.T) {
		in := newLabel(rng('a', 'c'), "t1")
		out := Partition[[]string]([]*labelBuilder{in})
		require.Len(t, out, 1)
		assert.NotSame(t, in, out[0])
		assert.Equal(t, "[a-c]", out[0].Matcher().String())
	})

	t.Run("full domain", func(t *testing.T) {
		out := Partition[[]string]([]*labelBuilder{
			newLabel(interval.All(), "t1"),
			newLabel(rng(interval.MaxRune, interval.MaxRune), "t2"),
		})
		require.Len(t, out, 2)
		assert.Equal(t, rune(interval.MaxRune-1), out[0].Matcher().Max())
		assert.Equal(t, []string{"t1", "t2"}, out[1].TransitionSet())
	})
}

func randomMatcher(r *rand.Rand) interval.Matcher {
	var ranges []interval.Range
	for i := r.Intn(3); i >= 0; i-- {
		lo := rune('a' + r.Intn(26))
		ranges = append(ranges, interval.Range{Lo: lo, Hi: lo + rune(r.Intn(6))})
	}
	return interval.Must(interval.New(ranges...))
}

func TestPartition_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for iter := 0; iter < 300; iter++ {
		in := make([]*labelBuilder, 1+r.Intn(5))
		union := interval.Empty()
		for i := range in {
			in[i] = newLabel(randomMatcher(r), string(rune('A'+i)))
			union = union.Union(in[i].Matcher())
		}

		out := Partition[[]string](in)

		covered := interval.Empty()
		for i, f := range out {
			require.False(t, f.Matcher().IsEmpty(), "fragment %d is empty", i)
			assert.True(t, covered.Intersect(f.Matcher()).IsEmpty(), "fragment %d overlaps earlier ones", i)
			covered = covered.Union(f.Matcher())
			if i > 0 {
				assert.Less(t, out[i-1].Matcher().Min(), f.Matcher().Min(), "fragments out of order")
			}

			// Every code point in the fragment is covered by exactly the labeled inputs.
			for _, rg := range f.Matcher().Ranges() {
				for c := rg.Lo; c <= rg.Hi; c++ {
					var want []string
					for _, b := range in {
						if b.Matcher().Contains(c) {
							want = append(want, b.labels...)
						}
					}
					slices.Sort(want)
					assert.Equal(t, want, f.TransitionSet(), "cover of %q", c)
				}
			}
		}
		assert.True(t, covered.Equal(union), "fragments must cover the union of inputs")
	}
}
