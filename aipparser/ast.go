package aipparser

// Conventional edge kinds. Kind is an open string; these are the values the
// validator recognises.
const (
	KindNav    = "NAV"
	KindQuery  = "QRY"
	KindAction = "ACT"
)

// ImplicitSection names the metadata section used for values that appear
// before any section header.
const ImplicitSection = "Meta"

// TargetSelf is the edge target that refers back to the current node.
const TargetSelf = "self"

// Required header keys, in the order they are checked.
const (
	HeaderNode        = "Node"
	HeaderFetch       = "Fetch"
	HeaderTitle       = "Title"
	HeaderDescription = "Description"
)

var requiredHeaders = []string{HeaderNode, HeaderFetch, HeaderTitle, HeaderDescription}

// Section is a named group of metadata lines within an edge body.
type Section struct {
	Name   string   `yaml:"name" json:"name"`
	Values []string `yaml:"values" json:"values"`
}

// Edge is a typed, directed link from a node to a target.
type Edge struct {
	ID      string    `yaml:"id" json:"id"`
	Kind    string    `yaml:"kind" json:"kind"`
	Method  string    `yaml:"method" json:"method"`
	Target  string    `yaml:"target" json:"target"`
	Summary string    `yaml:"summary" json:"summary"`
	Meta    []Section `yaml:"meta,omitempty" json:"meta,omitempty"` // sections in first-seen order
}

// Section looks up a metadata section by name.
func (e *Edge) Section(name string) (Section, bool) {
	for _, s := range e.Meta {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// SectionNames returns the metadata section names in order.
func (e *Edge) SectionNames() []string {
	names := make([]string, 0, len(e.Meta))
	for _, s := range e.Meta {
		names = append(names, s.Name)
	}
	return names
}

// IsSelf reports whether the edge targets the node it belongs to.
func (e *Edge) IsSelf() bool { return e.Target == TargetSelf }

// openSection makes name the active section, creating it if needed, and
// returns its index in Meta.
func (e *Edge) openSection(name string) int {
	for i := range e.Meta {
		if e.Meta[i].Name == name {
			return i
		}
	}
	e.Meta = append(e.Meta, Section{Name: name, Values: []string{}})
	return len(e.Meta) - 1
}

// Node is the parsed representation of a single AIP document.
type Node struct {
	Version     string            `yaml:"version" json:"version"`
	NodeURI     string            `yaml:"node" json:"node"`
	FetchURI    string            `yaml:"fetch" json:"fetch"`
	Title       string            `yaml:"title" json:"title"`
	Description string            `yaml:"description" json:"description"`
	Headers     map[string]string `yaml:"headers" json:"headers"` // every header key, last value wins
	Content     []string          `yaml:"content" json:"content"`
	Edges       []*Edge           `yaml:"edges" json:"edges"`
}

// Edge returns the first edge with the given id, or nil if not found.
func (n *Node) Edge(id string) *Edge {
	for _, e := range n.Edges {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// EdgesByKind returns all edges of the given kind in declaration order.
func (n *Node) EdgesByKind(kind string) []*Edge {
	var result []*Edge
	for _, e := range n.Edges {
		if e.Kind == kind {
			result = append(result, e)
		}
	}
	return result
}

// Header looks up a header value by key. Returns the value and true if found.
func (n *Node) Header(key string) (string, bool) {
	v, ok := n.Headers[key]
	return v, ok
}
