package aipparser

import (
	"strings"
)

const (
	versionPrefix  = "AIP/"
	contentMarker  = "Content:"
	edgesMarker    = "Edges:"
	edgeDelimiter  = " - "
	edgeIndent     = 2
	metadataIndent = 4
)

// mode is the section of the document the parser is currently reading.
// Modes only ever move forward: header -> content -> edges.
type mode int

const (
	modeHeader mode = iota
	modeContent
	modeEdges
)

// Parse parses AIP source text and returns a Node.
// Returns a *FormatError on failure; no partial Node is ever returned.
func Parse(src []byte) (*Node, error) {
	return ParseString(string(src))
}

// ParseString is Parse for a string input.
func ParseString(text string) (*Node, error) {
	p := &parser{
		lines:   SplitLines(text),
		headers: make(map[string]string),
		content: []string{},
		edges:   []*Edge{},
	}
	return p.parseNode()
}

// parser holds the state of a single Parse call.
type parser struct {
	lines   []Line
	mode    mode
	headers map[string]string
	content []string
	edges   []*Edge

	current *Edge // edge receiving metadata, nil before the first edge line
	section int   // index into current.Meta, -1 when no section is open
}

func (p *parser) parseNode() (*Node, error) {
	if len(p.lines) == 0 || !strings.HasPrefix(p.lines[0].Text, versionPrefix) {
		line := 0
		if len(p.lines) > 0 {
			line = p.lines[0].Num
		}
		return nil, formatErrorf(line, "missing AIP/<version> header")
	}
	version := strings.TrimSpace(strings.TrimPrefix(p.lines[0].Text, versionPrefix))
	if version == "" {
		return nil, formatErrorf(p.lines[0].Num, "empty version in AIP/<version> header")
	}

	for _, ln := range p.lines[1:] {
		var err error
		switch p.mode {
		case modeHeader:
			err = p.parseHeaderLine(ln)
		case modeContent:
			p.parseContentLine(ln)
		case modeEdges:
			err = p.parseEdgeBlockLine(ln)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := p.checkStructure(); err != nil {
		return nil, err
	}

	return &Node{
		Version:     version,
		NodeURI:     p.headers[HeaderNode],
		FetchURI:    p.headers[HeaderFetch],
		Title:       p.headers[HeaderTitle],
		Description: p.headers[HeaderDescription],
		Headers:     p.headers,
		Content:     p.content,
		Edges:       p.edges,
	}, nil
}

// checkStructure enforces the document-level invariants after the pass.
func (p *parser) checkStructure() error {
	for _, key := range requiredHeaders {
		if _, ok := p.headers[key]; !ok {
			return formatErrorf(0, "missing required field: %s", key)
		}
	}

	// The marker check looks for the literal text anywhere in the document
	// rather than at the mode transitions, so a summary or content line
	// containing the marker text also satisfies it.
	text := joinLines(p.lines)
	if len(p.content) == 0 && !strings.Contains(text, contentMarker) {
		return formatErrorf(0, "missing Content: section")
	}
	if len(p.edges) == 0 && !strings.Contains(text, edgesMarker) {
		return formatErrorf(0, "missing Edges: section")
	}
	return nil
}

// parseHeaderLine handles a line while in header mode.
func (p *parser) parseHeaderLine(ln Line) error {
	switch {
	case strings.HasPrefix(ln.Text, contentMarker):
		p.mode = modeContent
		return nil
	case strings.HasPrefix(ln.Text, edgesMarker):
		p.enterEdges()
		return nil
	case ln.IsBlank():
		return nil
	}

	key, value, ok := strings.Cut(ln.Text, ":")
	if !ok {
		return formatErrorf(ln.Num, "invalid header line: %q", ln.Text)
	}
	p.headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	return nil
}

// parseContentLine handles a line while in content mode. Content lines are
// never rejected: unindented lines are kept verbatim.
func (p *parser) parseContentLine(ln Line) {
	switch {
	case strings.HasPrefix(ln.Text, edgesMarker):
		p.enterEdges()
	case strings.HasPrefix(ln.Text, "  "):
		p.content = append(p.content, ln.Text[2:])
	case ln.IsBlank():
		p.content = append(p.content, "")
	default:
		p.content = append(p.content, ln.Text)
	}
}

func (p *parser) enterEdges() {
	p.mode = modeEdges
	p.section = -1
}

// parseEdgeBlockLine dispatches a line in edge mode on its indentation.
func (p *parser) parseEdgeBlockLine(ln Line) error {
	if ln.IsBlank() {
		return nil
	}
	switch indent := ln.indent(); {
	case indent == edgeIndent:
		return p.parseEdgeLine(ln)
	case indent >= metadataIndent:
		return p.parseMetadataLine(ln)
	default:
		return formatErrorf(ln.Num, "unexpected indentation: %q", ln.Text)
	}
}

// parseEdgeLine parses "<id> <KIND> <METHOD> <TARGET...> - <summary>" and
// makes the new edge current.
func (p *parser) parseEdgeLine(ln Line) error {
	stripped := strings.TrimSpace(ln.Text)
	left, summary, ok := strings.Cut(stripped, edgeDelimiter)
	if !ok {
		return formatErrorf(ln.Num, "invalid edge line: %q", stripped)
	}

	parts := strings.Fields(left)
	if len(parts) < 4 {
		return formatErrorf(ln.Num, "invalid edge left side: %q", left)
	}

	edge := &Edge{
		ID:      parts[0],
		Kind:    parts[1],
		Method:  parts[2],
		Target:  strings.Join(parts[3:], " "),
		Summary: summary,
	}
	p.edges = append(p.edges, edge)
	p.current = edge
	p.section = -1
	return nil
}

// parseMetadataLine handles a section header or a value line for the
// current edge.
func (p *parser) parseMetadataLine(ln Line) error {
	if p.current == nil {
		return formatErrorf(ln.Num, "edge metadata without an edge: %q", strings.TrimSpace(ln.Text))
	}

	stripped := strings.TrimSpace(ln.Text)
	if name, ok := sectionHeader(stripped); ok {
		p.section = p.current.openSection(name)
		return nil
	}

	if p.section < 0 {
		p.section = p.current.openSection(ImplicitSection)
	}
	s := &p.current.Meta[p.section]
	s.Values = append(s.Values, stripped)
	return nil
}

// sectionHeader reports whether s is a section header such as "Input:" and
// returns the section name.
func sectionHeader(s string) (string, bool) {
	name, ok := strings.CutSuffix(s, ":")
	if !ok || strings.Contains(name, " ") {
		return "", false
	}
	return name, true
}
