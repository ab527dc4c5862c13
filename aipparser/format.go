package aipparser

import (
	"bytes"
	"fmt"
	"sort"
)

// Format renders a node in canonical AIP text form. Parsing the output
// yields a node equal to n, provided no content line begins with "Edges:"
// and no metadata value looks like a section header.
func Format(n *Node) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "AIP/%s\n", n.Version)
	fmt.Fprintf(&b, "%s: %s\n", HeaderNode, n.NodeURI)
	fmt.Fprintf(&b, "%s: %s\n", HeaderFetch, n.FetchURI)
	fmt.Fprintf(&b, "%s: %s\n", HeaderTitle, n.Title)
	fmt.Fprintf(&b, "%s: %s\n", HeaderDescription, n.Description)
	for _, key := range extraHeaderKeys(n.Headers) {
		fmt.Fprintf(&b, "%s: %s\n", key, n.Headers[key])
	}

	b.WriteString(contentMarker + "\n")
	for _, line := range n.Content {
		if line == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}

	b.WriteString(edgesMarker + "\n")
	for _, e := range n.Edges {
		fmt.Fprintf(&b, "  %s %s %s %s%s%s\n", e.ID, e.Kind, e.Method, e.Target, edgeDelimiter, e.Summary)
		for _, s := range e.Meta {
			fmt.Fprintf(&b, "    %s:\n", s.Name)
			for _, v := range s.Values {
				fmt.Fprintf(&b, "      %s\n", v)
			}
		}
	}
	return b.Bytes()
}

// extraHeaderKeys returns the non-required header keys in sorted order.
func extraHeaderKeys(headers map[string]string) []string {
	required := make(map[string]bool, len(requiredHeaders))
	for _, k := range requiredHeaders {
		required[k] = true
	}
	var keys []string
	for k := range headers {
		if !required[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
