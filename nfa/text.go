package nfa

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"

	"github.com/coregx/coredfa/interval"
)

// Textual NFA format, used for fixtures and the command-line tool:
//
//	start -> s0;
//	s0 -> s1 ['a'-'f', 'x'] open(1);
//	s1 -> s1 [48-57];
//	s1 -> accept close(1);
//	s0 -> accept_anchored;
//
// "start" as a source declares an initial transition; "accept" and
// "accept_anchored" name the unanchored and anchored final states. Every
// other identifier names a normal state, created on first use. Edges between
// normal states need a class; bounds are character literals or integer code
// points. Priorities follow statement order.
type textNFA struct {
	Edges []*textEdge `parser:"(@@ ';')*"`
}

type textEdge struct {
	From   string       `parser:"@Ident '-' '>'"`
	To     string       `parser:"@Ident"`
	Class  *textClass   `parser:"@@?"`
	Groups []*textGroup `parser:"@@*"`
}

type textClass struct {
	Ranges []*textRange `parser:"'[' @@ (',' @@)* ']'"`
}

type textRange struct {
	Lo *textPoint `parser:"@@"`
	Hi *textPoint `parser:"('-' @@)?"`
}

type textPoint struct {
	Char *string `parser:"@Char"`
	Int  *string `parser:"| @Int"`
}

type textGroup struct {
	Kind  string `parser:"@('open' | 'close')"`
	Group int    `parser:"'(' @Int ')'"`
}

var textParser = participle.MustBuild[textNFA]()

const (
	textStart          = "start"
	textAccept         = "accept"
	textAcceptAnchored = "accept_anchored"
)

// ParseText parses the textual NFA format into a forward NFA.
func ParseText(src string) (*NFA, error) {
	ast, err := textParser.ParseString("nfa", src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidText, err)
	}

	b := NewBuilder()
	states := make(map[string]StateID)
	stateFor := func(name string) StateID {
		if id, ok := states[name]; ok {
			return id
		}
		id := b.AddState()
		states[name] = id
		return id
	}

	for i, e := range ast.Edges {
		var slots []int
		for _, g := range e.Groups {
			if g.Kind == "open" {
				slots = append(slots, OpenSlot(g.Group))
			} else {
				slots = append(slots, CloseSlot(g.Group))
			}
		}
		opt := WithGroups(NewGroupBoundaries(slots, nil))

		if e.To == textStart {
			return nil, fmt.Errorf("%w: edge %d: %q cannot be a target", ErrInvalidText, i, textStart)
		}
		if e.From == textAccept || e.From == textAcceptAnchored {
			return nil, fmt.Errorf("%w: edge %d: final state %q cannot be a source", ErrInvalidText, i, e.From)
		}

		switch {
		case e.From == textStart:
			if e.Class != nil {
				return nil, fmt.Errorf("%w: edge %d: initial transitions consume no input", ErrInvalidText, i)
			}
			if e.To == textAccept || e.To == textAcceptAnchored {
				return nil, fmt.Errorf("%w: edge %d: initial transitions must enter a normal state", ErrInvalidText, i)
			}
			b.AddInitial(stateFor(e.To), opt)

		case e.To == textAccept || e.To == textAcceptAnchored:
			if e.Class != nil {
				return nil, fmt.Errorf("%w: edge %d: final transitions consume no input", ErrInvalidText, i)
			}
			b.AddFinalTransition(stateFor(e.From), e.To == textAcceptAnchored, opt)

		default:
			if e.Class == nil {
				return nil, fmt.Errorf("%w: edge %d: %s -> %s needs a class", ErrInvalidText, i, e.From, e.To)
			}
			m, err := e.Class.matcher()
			if err != nil {
				return nil, fmt.Errorf("%w: edge %d: %v", ErrInvalidText, i, err)
			}
			b.AddTransition(stateFor(e.From), stateFor(e.To), m, opt)
		}
	}

	return b.Build()
}

func (c *textClass) matcher() (interval.Matcher, error) {
	ranges := make([]interval.Range, 0, len(c.Ranges))
	for _, r := range c.Ranges {
		lo, err := r.Lo.rune()
		if err != nil {
			return interval.Matcher{}, err
		}
		hi := lo
		if r.Hi != nil {
			if hi, err = r.Hi.rune(); err != nil {
				return interval.Matcher{}, err
			}
		}
		ranges = append(ranges, interval.Range{Lo: lo, Hi: hi})
	}
	return interval.New(ranges...)
}

func (p *textPoint) rune() (rune, error) {
	if p.Char != nil {
		s, err := strconv.Unquote(*p.Char)
		if err != nil {
			return 0, fmt.Errorf("bad character literal %s: %w", *p.Char, err)
		}
		r, size := utf8.DecodeRuneInString(s)
		if size != len(s) {
			return 0, fmt.Errorf("character literal %s is not a single code point", *p.Char)
		}
		return r, nil
	}
	v, err := strconv.ParseInt(*p.Int, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("bad code point %s: %w", *p.Int, err)
	}
	return rune(v), nil
}
