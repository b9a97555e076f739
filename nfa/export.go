package nfa

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// WriteText writes a nested node/edge description of m: one line per machine,
// per state and per arc, with embedded machines indented under their host.
func WriteText[T, I any](w io.Writer, m *Machine[T, I]) error {
	var sb strings.Builder
	writeText(&sb, m, 0)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeText[T, I any](sb *strings.Builder, m *Machine[T, I], depth int) {
	indent := strings.Repeat("  ", depth)
	switch m.kind {
	case KindEmpty:
		fmt.Fprintf(sb, "%smachine %q %s\n", indent, m.id, m.kind)
	case KindNegative:
		fmt.Fprintf(sb, "%smachine %q %s\n", indent, m.id, m.kind)
		fmt.Fprintf(sb, "%s  positive:\n", indent)
		writeText(sb, m.positive, depth+2)
		fmt.Fprintf(sb, "%s  negative:\n", indent)
		writeText(sb, m.negative, depth+2)
	case KindStandard:
		fmt.Fprintf(sb, "%smachine %q %s start=%d accept=%d\n", indent, m.id, m.kind, m.start, m.accept)
		for i, s := range m.graph.states {
			fmt.Fprintf(sb, "%s  node %d %q", indent, i, s.name)
			if StateID(i) == m.accept {
				sb.WriteString(" accepting")
			}
			sb.WriteByte('\n')
			for _, a := range s.arcs {
				fmt.Fprintf(sb, "%s    edge %s %d\n", indent, a.Label, a.To)
			}
			if s.embedded != noMachine {
				writeText(sb, m.embedded[s.embedded], depth+2)
			}
		}
	}
}

// dotGraph collects the lines of a Graphviz description; nodes and edges are
// sorted on output so the result is deterministic.
type dotGraph struct {
	nodes    []string
	edges    []string
	clusters map[string][]string
}

// WriteDot writes m and every machine inside it as a Graphviz digraph. Each
// Standard machine is one cluster; hosts link to the start of the machine
// they embed with dashed edges.
func WriteDot[T, I any](w io.Writer, m *Machine[T, I], title string) error {
	dot := &dotGraph{clusters: make(map[string][]string)}
	dotMachine(dot, m)

	if _, err := fmt.Fprintf(w, "digraph %q {\n\trankdir=LR;\n", m.id); err != nil {
		return err
	}
	ids := maps.Keys(dot.clusters)
	slices.Sort(ids)
	for i, id := range ids {
		nodes := dot.clusters[id]
		slices.Sort(nodes)
		if _, err := fmt.Fprintf(w, "\tsubgraph cluster_%d {\n\t\tlabel=%q;\n", i, id); err != nil {
			return err
		}
		for _, s := range nodes {
			if _, err := fmt.Fprint(w, "\t", s); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, "\t}\n"); err != nil {
			return err
		}
	}
	slices.Sort(dot.edges)
	for _, s := range dot.edges {
		if _, err := fmt.Fprint(w, s); err != nil {
			return err
		}
	}
	title = strings.ReplaceAll(title, `\`, `\\`)
	_, err := fmt.Fprintf(w, "\tlabelloc=\"t\";\n\tlabel=%q;\n}\n", title)
	return err
}

func dotNode(machine string, id StateID) string {
	return fmt.Sprintf("%q", fmt.Sprintf("%s/%d", machine, id))
}

// dotMachine adds m and returns the nodes a host should point at, none when m
// has no graph of its own to point into.
func dotMachine[T, I any](dot *dotGraph, m *Machine[T, I]) []string {
	switch m.kind {
	case KindNegative:
		return append(dotMachine(dot, m.positive), dotMachine(dot, m.negative)...)
	case KindEmpty:
		return nil
	}
	if _, done := dot.clusters[m.id]; done {
		return []string{dotNode(m.id, m.start)}
	}
	dot.clusters[m.id] = nil
	for i, s := range m.graph.states {
		id := StateID(i)
		shape := "ellipse"
		switch {
		case id == m.start && id == m.accept:
			shape = "doubleoctagon"
		case id == m.start:
			shape = "octagon"
		case id == m.accept:
			shape = "doublecircle"
		}
		dot.clusters[m.id] = append(dot.clusters[m.id],
			fmt.Sprintf("\t%s [shape=%s; label=%q];\n", dotNode(m.id, id), shape, s.name))
		for _, a := range s.arcs {
			dot.edges = append(dot.edges, fmt.Sprintf("\t%s -> %s [label=%q];\n",
				dotNode(m.id, id), dotNode(m.id, a.To), a.Label.String()))
		}
		if s.embedded != noMachine {
			for _, target := range dotMachine(dot, m.embedded[s.embedded]) {
				dot.edges = append(dot.edges, fmt.Sprintf("\t%s -> %s [style=dashed];\n",
					dotNode(m.id, id), target))
			}
		}
	}
	return []string{dotNode(m.id, m.start)}
}
