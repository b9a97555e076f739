package feature

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/coregx/seqmatch/nfa"
	"github.com/coregx/seqmatch/token"
	"golang.org/x/exp/slices"
)

const testModel = `
features: [consonantal, voice, place, aspirated]
segments:
  p:  {consonantal: "+", voice: "-", place: labial, aspirated: "-"}
  pʰ: {consonantal: "+", voice: "-", place: labial, aspirated: "+"}
  b:  {consonantal: "+", voice: "+", place: labial}
  t:  {consonantal: "+", voice: "-", place: coronal, aspirated: "-"}
  ts: {consonantal: "+", voice: "-", place: coronal}
  s:  {consonantal: "+", voice: "-", place: coronal}
  a:  {consonantal: "-", voice: "+"}
  u:  {consonantal: "-", voice: "+"}
  P:  {place: labial}
  C:  {consonantal: "+"}
aliases:
  STOP: [p, t]
`

func mustModel(t *testing.T) *Model {
	t.Helper()
	m, err := ParseModel([]byte(testModel))
	if err != nil {
		t.Fatalf("ParseModel: %v", err)
	}
	return m
}

func mustSeq(t *testing.T, m *Model, word string) []Segment {
	t.Helper()
	segs, err := m.Sequence(word)
	if err != nil {
		t.Fatalf("Sequence(%q): %v", word, err)
	}
	return segs
}

func TestParseModel(t *testing.T) {
	m := mustModel(t)
	if got := m.Features(); !slices.Equal(got, []string{"consonantal", "voice", "place", "aspirated"}) {
		t.Errorf("Features() = %q", got)
	}
	if got := len(m.Symbols()); got != 10 {
		t.Errorf("len(Symbols()) = %d, want 10", got)
	}
	b, ok := m.Segment("b")
	if !ok {
		t.Fatal("no segment b")
	}
	if b.Value("voice") != "+" || b.Value("aspirated") != Unspecified || b.Value("tone") != Unspecified {
		t.Errorf("unexpected values for b: %v", b)
	}
	if alts, ok := m.Aliases().Lookup("STOP"); !ok || !slices.Equal(alts, []string{"p", "t"}) {
		t.Errorf("Lookup(STOP) = %q, %v", alts, ok)
	}
}

func TestParseModel_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"malformed", "features: [a", ErrInvalidModel},
		{"duplicate feature", "features: [a, a]", ErrInvalidModel},
		{"unknown feature", "features: [a]\nsegments:\n  x: {b: \"+\"}\n", ErrUnknownFeature},
		{"meta symbol", "features: [a]\nsegments:\n  \"x*\": {a: \"+\"}\n", ErrInvalidModel},
		{"alias shadows segment", "features: [a]\nsegments:\n  x: {a: \"+\"}\naliases:\n  x: [x]\n", ErrInvalidModel},
		{"alias over unknown text", "features: [a]\nsegments:\n  x: {a: \"+\"}\naliases:\n  X: [y]\n", ErrUnknownSegment},
		{"empty alias", "features: [a]\nsegments:\n  x: {a: \"+\"}\naliases:\n  X: []\n", token.ErrEmptyAlias},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModel([]byte(tt.yaml))
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseModel error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	if err := os.WriteFile(path, []byte(testModel), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadModel(path); err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if _, err := LoadModel(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSequence(t *testing.T) {
	m := mustModel(t)
	tests := []struct {
		word string
		want string
	}{
		{"tsa", "ts|a"},
		{"pʰa", "pʰ|a"},
		{"pat", "p|a|t"},
		{"", ""},
	}
	for _, tt := range tests {
		segs := mustSeq(t, m, tt.word)
		var parts []string
		for _, s := range segs {
			parts = append(parts, s.Symbol())
		}
		got := ""
		for i, p := range parts {
			if i > 0 {
				got += "|"
			}
			got += p
		}
		if got != tt.want {
			t.Errorf("Sequence(%q) = %s, want %s", tt.word, got, tt.want)
		}
		if Join(segs) != tt.word {
			t.Errorf("Join(Sequence(%q)) = %q", tt.word, Join(segs))
		}
	}
	if _, err := m.Sequence("pxa"); !errors.Is(err, ErrUnknownSegment) {
		t.Errorf("Sequence(pxa) error = %v, want ErrUnknownSegment", err)
	}
}

func TestSegment_Matches(t *testing.T) {
	m := mustModel(t)
	seg := func(sym string) Segment {
		s, ok := m.Segment(sym)
		if !ok {
			t.Fatalf("no segment %q", sym)
		}
		return s
	}
	tests := []struct {
		a, b string
		want bool
	}{
		{"p", "p", true},
		{"p", "b", false},
		{"P", "p", true},
		{"P", "pʰ", true},
		{"b", "P", true},
		{"P", "t", false},
		{"C", "ts", true},
		{"C", "a", false},
		{"p", "pʰ", false},
		{"b", "pʰ", false},
	}
	for _, tt := range tests {
		if got := seg(tt.a).Matches(seg(tt.b)); got != tt.want {
			t.Errorf("%s.Matches(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}

	other := mustModel(t)
	o, _ := other.Segment("p")
	if seg("p").Matches(o) {
		t.Error("segments of different models should not match")
	}
	if (Segment{}).Matches(Segment{}) {
		t.Error("zero segments should not match")
	}
}

func TestSegment_String(t *testing.T) {
	m := mustModel(t)
	anon, err := m.NewSegment(map[string]string{"place": "labial", "voice": "+"})
	if err != nil {
		t.Fatal(err)
	}
	if got := anon.String(); got != "[voice=+ place=labial]" {
		t.Errorf("String() = %q", got)
	}
	if anon.Symbol() != "" || anon.Model() != m {
		t.Error("anonymous segment should have no symbol and belong to m")
	}
	if _, err := m.NewSegment(map[string]string{"tone": "high"}); !errors.Is(err, ErrUnknownFeature) {
		t.Errorf("NewSegment(tone) error = %v, want ErrUnknownFeature", err)
	}
}

func TestDomain_Match(t *testing.T) {
	m := mustModel(t)
	d := NewDomain(m)
	input := mustSeq(t, m, "pʰat")
	tok := func(s string) []Segment {
		seq, err := d.Transform(s)
		if err != nil {
			t.Fatal(err)
		}
		return seq
	}
	tests := []struct {
		name  string
		label token.Label[[]Segment]
		index int
		want  int
	}{
		{"epsilon", token.Epsilon[[]Segment](), 1, 0},
		{"dot", token.Dot[[]Segment](), 2, 1},
		{"dot at end", token.Dot[[]Segment](), 3, -1},
		{"boundary start", token.Boundary[[]Segment](), 0, 0},
		{"boundary inside", token.Boundary[[]Segment](), 1, -1},
		{"natural class", token.Literal("P", tok("P")), 0, 1},
		{"exact", token.Literal("pʰa", tok("pʰa")), 0, 2},
		{"mismatch", token.Literal("p", tok("p")), 0, -1},
		{"past end", token.Literal("ta", tok("ta")), 2, -1},
		{"alias second", token.Alias("STOP", [][]Segment{tok("p"), tok("t")}), 2, 1},
		{"alias none", token.Alias("STOP", [][]Segment{tok("p"), tok("t")}), 1, -1},
		{"out of range", token.Epsilon[[]Segment](), 4, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Match(input, tt.label, tt.index); got != tt.want {
				t.Errorf("Match = %d, want %d", got, tt.want)
			}
		})
	}

	if _, err := d.Transform("x"); !errors.Is(err, token.ErrUnknownLiteral) {
		t.Errorf("Transform(x) error = %v, want ErrUnknownLiteral", err)
	}
	if got := Join(d.Reverse(tok("pʰat"))); got != "tapʰ" {
		t.Errorf("Reverse = %q, want tapʰ", got)
	}
	if d.Len(tok("tsa")) != 2 || d.Length(input) != 3 {
		t.Error("unexpected Len/Length")
	}
}

func TestDomain_Patterns(t *testing.T) {
	m := mustModel(t)
	d := NewDomain(m)
	c := nfa.NewDefaultCompiler[[]Segment, []Segment](d)

	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"P a", []string{"pa", "ba", "pʰa"}, []string{"ta", "tsa"}},
		{"C+ a", []string{"tsa", "pta", "sa"}, []string{"a", "aa"}},
		// a leaves place open, so it falls inside the labial class.
		{"!P a", []string{"ta", "sa"}, []string{"ba", "pa", "aa"}},
		{"STOP u", []string{"pu", "tu", "su"}, []string{"bu", "au"}},
		{"pʰ.", []string{"pʰa", "pʰt"}, []string{"pa", "pʰ"}},
		{"#ts?a#", []string{"a", "tsa", "sa"}, []string{"pa", "tsta"}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			mach, err := c.Compile("m", tt.pattern)
			if err != nil {
				t.Fatal(err)
			}
			check := func(word string) bool {
				in := mustSeq(t, m, word)
				return slices.Contains(mach.MatchIndices(0, in), len(in))
			}
			for _, w := range tt.accept {
				if !check(w) {
					t.Errorf("%q should accept %q", tt.pattern, w)
				}
			}
			for _, w := range tt.reject {
				if check(w) {
					t.Errorf("%q should reject %q", tt.pattern, w)
				}
			}
		})
	}
}

func TestDomain_UnderspecifiedInput(t *testing.T) {
	m := mustModel(t)
	c := nfa.NewDefaultCompiler[[]Segment, []Segment](NewDomain(m))
	mach, err := c.Compile("m", "pa")
	if err != nil {
		t.Fatal(err)
	}
	labial, _ := m.NewSegment(map[string]string{"place": "labial"})
	vowel, _ := m.NewSegment(map[string]string{"consonantal": "-"})
	coronal, _ := m.NewSegment(map[string]string{"place": "coronal"})

	if got := mach.MatchIndices(0, []Segment{labial, vowel}); !slices.Equal(got, []int{2}) {
		t.Errorf("underspecified input = %v, want [2]", got)
	}
	if got := mach.MatchIndices(0, []Segment{coronal, vowel}); len(got) != 0 {
		t.Errorf("coronal input = %v, want none", got)
	}
}
