package nfa

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteText(t *testing.T) {
	m := compileText(t, "a!b")
	var buf bytes.Buffer
	if err := WriteText(&buf, m); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`machine "m" Standard start=0 accept=2`,
		`node 0 "m"`,
		`edge a 1`,
		`node 2 "0.1" accepting`,
		`machine "0.1" Negative`,
		`positive:`,
		`machine "0.1:pos" Standard`,
		`edge . 1`,
		`machine "0.1:neg" Standard`,
		`edge b 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteText output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := WriteText(&buf, compileText(t, "")); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "machine \"m\" Empty\n" {
		t.Errorf("WriteText(empty) = %q", got)
	}
}

func TestWriteDot(t *testing.T) {
	m := compileText(t, "a!b")
	var buf bytes.Buffer
	if err := WriteDot(&buf, m, `a!b`); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "digraph \"m\" {\n\trankdir=LR;\n") {
		t.Errorf("unexpected header:\n%s", out)
	}
	for _, want := range []string{
		`subgraph cluster_0 {`,
		`label="0.1:neg";`,
		`label="0.1:pos";`,
		`"m/0" [shape=octagon; label="m"];`,
		`"m/2" [shape=doublecircle; label="0.1"];`,
		`"m/0" -> "m/1" [label="a"];`,
		`"m/2" -> "0.1:pos/0" [style=dashed];`,
		`"m/2" -> "0.1:neg/0" [style=dashed];`,
		`label="a!b";`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteDot output missing %q:\n%s", want, out)
		}
	}

	var again bytes.Buffer
	if err := WriteDot(&again, m, `a!b`); err != nil {
		t.Fatal(err)
	}
	if again.String() != out {
		t.Error("WriteDot output is not deterministic")
	}
}
