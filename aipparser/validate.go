package aipparser

import (
	"fmt"
	"strings"
	"unicode"
)

// Severity represents the severity level of a validation diagnostic.
type Severity int

const (
	// Error means the node is unusable by a client.
	Error Severity = iota
	// Warning means the node parses but a client may misbehave.
	Warning
	// Info is an informational note.
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	case Info:
		return "INFO"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is a single validation finding.
type Diagnostic struct {
	Rule     string   // rule identifier (e.g., "node_uri_scheme")
	Severity Severity // ERROR, WARNING, or INFO
	Message  string   // human-readable description
	EdgeID   string   // related edge ID (optional)
	Fix      string   // suggested fix (optional)
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", d.Severity, d.Rule, d.Message)
	if d.EdgeID != "" {
		fmt.Fprintf(&b, " (edge: %s)", d.EdgeID)
	}
	if d.Fix != "" {
		fmt.Fprintf(&b, " -- fix: %s", d.Fix)
	}
	return b.String()
}

// LintRule is the interface for a single validation rule.
type LintRule interface {
	Name() string
	Apply(n *Node) []Diagnostic
}

// Validate runs all built-in rules (and any extra rules) against the node.
// It never fails; an empty result means no issues were found.
func Validate(n *Node, extraRules ...LintRule) []Diagnostic {
	rules := builtInRules()
	rules = append(rules, extraRules...)

	var diagnostics []Diagnostic
	for _, rule := range rules {
		diagnostics = append(diagnostics, rule.Apply(n)...)
	}
	return diagnostics
}

// Issues runs the built-in rules and returns their messages in order.
func Issues(n *Node) []string {
	issues := []string{}
	for _, d := range Validate(n) {
		issues = append(issues, d.Message)
	}
	return issues
}

func builtInRules() []LintRule {
	return []LintRule{
		nodeURISchemeRule{},
		fetchURISchemeRule{},
		edgeFieldsRule{},
	}
}

// knownKinds is the set of recognized edge kinds.
var knownKinds = map[string]bool{
	KindNav:    true,
	KindQuery:  true,
	KindAction: true,
}

// fetchSchemes are the accepted prefixes for the Fetch header.
var fetchSchemes = []string{"http://", "https://", "file://"}

// isAlpha reports whether s is non-empty and made of letters only.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// --- Rule implementations ---

// node_uri_scheme: Node must be an aip:// URI.
type nodeURISchemeRule struct{}

func (nodeURISchemeRule) Name() string { return "node_uri_scheme" }

func (nodeURISchemeRule) Apply(n *Node) []Diagnostic {
	if strings.HasPrefix(n.NodeURI, "aip://") {
		return nil
	}
	return []Diagnostic{{
		Rule:     "node_uri_scheme",
		Severity: Warning,
		Message:  "Node should start with aip://",
		Fix:      fmt.Sprintf("rewrite %q as aip://<host>/<path>", n.NodeURI),
	}}
}

// fetch_uri_scheme: Fetch must be an http(s) or file URL.
type fetchURISchemeRule struct{}

func (fetchURISchemeRule) Name() string { return "fetch_uri_scheme" }

func (fetchURISchemeRule) Apply(n *Node) []Diagnostic {
	for _, scheme := range fetchSchemes {
		if strings.HasPrefix(n.FetchURI, scheme) {
			return nil
		}
	}
	return []Diagnostic{{
		Rule:     "fetch_uri_scheme",
		Severity: Warning,
		Message:  "Fetch should be http(s):// or file:// for local demos",
	}}
}

// edge_kind_known and edge_method_alpha share one pass so that each edge's
// findings stay together.
type edgeFieldsRule struct{}

func (edgeFieldsRule) Name() string { return "edge_fields" }

func (edgeFieldsRule) Apply(n *Node) []Diagnostic {
	var diags []Diagnostic
	for _, e := range n.Edges {
		if !knownKinds[e.Kind] {
			diags = append(diags, Diagnostic{
				Rule:     "edge_kind_known",
				Severity: Warning,
				Message:  fmt.Sprintf("Edge %s: unknown kind %s", e.ID, e.Kind),
				EdgeID:   e.ID,
				Fix:      "use NAV, QRY or ACT",
			})
		}
		if !isAlpha(e.Method) {
			diags = append(diags, Diagnostic{
				Rule:     "edge_method_alpha",
				Severity: Warning,
				Message:  fmt.Sprintf("Edge %s: invalid method %s", e.ID, e.Method),
				EdgeID:   e.ID,
			})
		}
	}
	return diags
}
