package browser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/martinemde/aip/aipparser"
	"github.com/rs/zerolog"
)

// DefaultMaxContentLines is the number of content lines shown before the
// browser truncates a node.
const DefaultMaxContentLines = 60

const separator = "------------------------------------------------------------"

// Browser is an interactive, line-oriented client for AIP nodes. It prints a
// node, asks the user for an edge id and follows that edge's target.
type Browser struct {
	In       io.Reader
	Out      io.Writer
	Loader   Loader
	Resolver Resolver

	// MaxContentLines limits the content shown per node; <= 0 shows all.
	MaxContentLines int
	Logger          zerolog.Logger

	styles styles
}

type styles struct {
	title   lipgloss.Style
	warning lipgloss.Style
	faint   lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		title:   r.NewStyle().Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("214")),
		faint:   r.NewStyle().Faint(true),
	}
}

// New creates a Browser that reads choices from in and writes to out, loading
// nodes from the local file system.
func New(in io.Reader, out io.Writer) *Browser {
	return &Browser{
		In:              in,
		Out:             out,
		Loader:          FileLoader{},
		Resolver:        NewResolver(),
		MaxContentLines: DefaultMaxContentLines,
		Logger:          zerolog.Nop(),
	}
}

// readLineResult holds the result of a background line read.
type readLineResult struct {
	line string
	err  error
}

// Run browses from start until the user quits, input ends, or a node cannot
// be loaded or parsed. Load and parse failures are returned unchanged so the
// caller can tell a *LoadError from an *aipparser.FormatError.
func (b *Browser) Run(ctx context.Context, start string) error {
	log := b.Logger.With().Str("session", uuid.NewString()).Logger()
	b.styles = newStyles(b.Out)
	scanner := bufio.NewScanner(b.In)
	current := start

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		node, err := b.open(ctx, current)
		if err != nil {
			fmt.Fprintf(b.Out, "Failed to load/parse: %s\n%v\n", current, err)
			log.Error().Err(err).Str("location", current).Msg("open failed")
			return err
		}
		log.Debug().Str("location", current).Str("node", node.NodeURI).Int("edges", len(node.Edges)).Msg("opened node")

		b.printWarnings(aipparser.Issues(node))
		b.printNode(node)

		fmt.Fprint(b.Out, "\nChoose edge id (or 'q' to quit): ")
		choice, err := readLine(ctx, scanner)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(b.Out)
			return nil
		}
		if err != nil {
			return err
		}

		choice = strings.TrimSpace(choice)
		switch strings.ToLower(choice) {
		case "q", "quit", "exit":
			log.Debug().Msg("quit")
			return nil
		}

		edge := node.Edge(choice)
		if edge == nil {
			fmt.Fprintln(b.Out, "Unknown edge id.")
			continue
		}

		next := b.Resolver.Resolve(current, edge.Target)
		if !b.Loader.Exists(ctx, next) {
			fmt.Fprintf(b.Out, "Target not found locally: %s\n", next)
			log.Warn().Str("edge", edge.ID).Str("target", edge.Target).Str("location", next).Msg("target not found")
			continue
		}
		log.Info().Str("edge", edge.ID).Str("from", current).Str("to", next).Msg("follow edge")
		current = next
	}
}

// open loads and parses the node at location.
func (b *Browser) open(ctx context.Context, location string) (*aipparser.Node, error) {
	text, err := b.Loader.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	return aipparser.ParseString(text)
}

// readLine reads one line from scanner, giving up when ctx is done.
func readLine(ctx context.Context, scanner *bufio.Scanner) (string, error) {
	resultCh := make(chan readLineResult, 1)
	go func() {
		if scanner.Scan() {
			resultCh <- readLineResult{line: scanner.Text()}
			return
		}
		if err := scanner.Err(); err != nil {
			resultCh <- readLineResult{err: fmt.Errorf("reading input: %w", err)}
			return
		}
		resultCh <- readLineResult{err: io.EOF}
	}()

	select {
	case result := <-resultCh:
		return result.line, result.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (b *Browser) printWarnings(issues []string) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintln(b.Out, b.styles.warning.Render("Warnings:"))
	for _, w := range issues {
		fmt.Fprintf(b.Out, "  - %s\n", w)
	}
}

func (b *Browser) printNode(n *aipparser.Node) {
	fmt.Fprintln(b.Out)
	fmt.Fprintln(b.Out, b.styles.title.Render(n.Title))
	fmt.Fprintln(b.Out, n.Description)
	fmt.Fprintln(b.Out, separator)

	content := n.Content
	truncated := b.MaxContentLines > 0 && len(content) > b.MaxContentLines
	if truncated {
		content = content[:b.MaxContentLines]
	}
	for _, line := range content {
		fmt.Fprintln(b.Out, line)
	}
	if truncated {
		fmt.Fprintln(b.Out, b.styles.faint.Render("... (content truncated by browser)"))
	}

	fmt.Fprintln(b.Out, separator)
	fmt.Fprintln(b.Out, "Edges:")
	for _, e := range n.Edges {
		fmt.Fprintf(b.Out, "  %-10s %-3s %-4s %-30s  %s\n", e.ID, e.Kind, e.Method, e.Target, e.Summary)
	}
}
