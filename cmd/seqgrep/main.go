// Command seqgrep prints lines that match a sequence pattern.
//
//	seqgrep [-config f.yaml] [-aliases f.yaml] [-model f.yaml] [-o] [-x] pattern [file...]
//
// Lines are matched as character clusters, or as phonetic segments when a
// feature model is given. The exit status is 0 if a line matched, 1 if none
// did and 2 on error.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/coregx/seqmatch"
	"github.com/coregx/seqmatch/feature"
	"github.com/coregx/seqmatch/nfa"
	"github.com/coregx/seqmatch/text"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// searcher finds the matching parts of one line.
type searcher interface {
	// find returns the matched texts of line; whole-line mode returns the
	// line itself or nothing.
	find(line string) ([]string, error)
	dot(w io.Writer) error
}

type grepper[T, I any] struct {
	pattern *seqmatch.Pattern[T, I]
	input   func(string) (I, error)
	reverse func(I) I
	length  func(I) int
	slice   func(in I, start, end int) string
	whole   bool
}

func (g *grepper[T, I]) find(line string) ([]string, error) {
	in, err := g.input(line)
	if err != nil {
		return nil, err
	}
	backward := g.pattern.Config().Direction == nfa.Backward
	search := in
	if backward {
		search = g.reverse(in)
	}
	if g.whole {
		if g.pattern.MatchAll(search) {
			return []string{line}, nil
		}
		return nil, nil
	}
	n := g.length(in)
	var out []string
	for _, s := range g.pattern.FindAll(search, -1) {
		if backward {
			s = seqmatch.Span{Start: n - s.End, End: n - s.Start}
		}
		out = append(out, g.slice(in, s.Start, s.End))
	}
	return out, nil
}

func (g *grepper[T, I]) dot(w io.Writer) error {
	return nfa.WriteDot(w, g.pattern.Machine(), g.pattern.String())
}

func textSearcher(pattern, aliasFile string, config seqmatch.Config, whole bool) (searcher, error) {
	domain := text.NewDomain(nil)
	if aliasFile != "" {
		aliases, err := text.LoadAliases(aliasFile)
		if err != nil {
			return nil, err
		}
		domain = text.NewDomain(aliases)
	}
	p, err := seqmatch.CompileWithConfig[string, []string](pattern, domain, config)
	if err != nil {
		return nil, err
	}
	return &grepper[string, []string]{
		pattern: p,
		input:   func(s string) ([]string, error) { return text.Input(s), nil },
		reverse: text.ReverseInput,
		length:  func(in []string) int { return len(in) },
		slice:   func(in []string, i, j int) string { return strings.Join(in[i:j], "") },
		whole:   whole,
	}, nil
}

func featureSearcher(pattern, modelFile string, config seqmatch.Config, whole bool) (searcher, error) {
	model, err := feature.LoadModel(modelFile)
	if err != nil {
		return nil, err
	}
	domain := feature.NewDomain(model)
	p, err := seqmatch.CompileWithConfig[[]feature.Segment, []feature.Segment](pattern, domain, config)
	if err != nil {
		return nil, err
	}
	return &grepper[[]feature.Segment, []feature.Segment]{
		pattern: p,
		input:   domain.Input,
		reverse: feature.ReverseInput,
		length:  func(in []feature.Segment) int { return len(in) },
		slice:   func(in []feature.Segment, i, j int) string { return feature.Join(in[i:j]) },
		whole:   whole,
	}, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		dashconfig  string
		dashaliases string
		dashmodel   string
		dasho       bool
		dashx       bool
		dashv       bool
		dashdot     bool
	)
	flags := flag.NewFlagSet("seqgrep", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&dashconfig, "config", "", "YAML configuration file")
	flags.StringVar(&dashaliases, "aliases", "", "YAML alias table for the text domain")
	flags.StringVar(&dashmodel, "model", "", "YAML feature model; match lines as segments")
	flags.BoolVar(&dasho, "o", false, "print only the matched parts of lines")
	flags.BoolVar(&dashx, "x", false, "match whole lines only")
	flags.BoolVar(&dashv, "v", false, "verbose")
	flags.BoolVar(&dashdot, "dot", false, "print the compiled automaton as Graphviz and exit")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "usage: seqgrep [flags] pattern [file...]\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() < 1 {
		flags.Usage()
		return 2
	}
	logger := log.New(stderr, "seqgrep: ", 0)

	config := seqmatch.DefaultConfig()
	if dashconfig != "" {
		var err error
		if config, err = seqmatch.LoadConfig(dashconfig); err != nil {
			logger.Printf("%v", err)
			return 2
		}
	}
	if dashv {
		config.Logger = logger
	}

	pattern := flags.Arg(0)
	var s searcher
	var err error
	if dashmodel != "" {
		s, err = featureSearcher(pattern, dashmodel, config, dashx)
	} else {
		s, err = textSearcher(pattern, dashaliases, config, dashx)
	}
	if err != nil {
		logger.Printf("%v", err)
		return 2
	}
	if dashdot {
		if err := s.dot(stdout); err != nil {
			logger.Printf("%v", err)
			return 2
		}
		return 0
	}

	files := flags.Args()[1:]
	out := bufio.NewWriter(stdout)
	defer out.Flush()
	matched, failed := false, false
	grep := func(name string, r io.Reader) {
		prefix := ""
		if len(files) > 1 {
			prefix = name + ":"
		}
		ok, err := grepLines(s, r, out, prefix, dasho)
		matched = matched || ok
		if err != nil {
			logger.Printf("%s: %v", name, err)
			failed = true
		}
	}
	if len(files) == 0 {
		grep("(standard input)", stdin)
	}
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			logger.Printf("%v", err)
			failed = true
			continue
		}
		grep(name, f)
		f.Close()
	}

	switch {
	case failed:
		return 2
	case matched:
		return 0
	default:
		return 1
	}
}

// grepLines writes the matching lines of r (or their matched parts when
// only is set) to w and reports whether any line matched.
func grepLines(s searcher, r io.Reader, w io.Writer, prefix string, only bool) (bool, error) {
	matched := false
	scanner := bufio.NewScanner(r)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := scanner.Text()
		found, err := s.find(line)
		if err != nil {
			return matched, fmt.Errorf("line %d: %w", lineno, err)
		}
		if len(found) == 0 {
			continue
		}
		matched = true
		if !only {
			fmt.Fprintf(w, "%s%s\n", prefix, line)
			continue
		}
		for _, part := range found {
			if part != "" {
				fmt.Fprintf(w, "%s%s\n", prefix, part)
			}
		}
	}
	return matched, scanner.Err()
}
