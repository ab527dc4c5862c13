// Package aipparser implements a parser and validator for AIP node documents.
//
// An AIP node is a small line-oriented text format: a version line, a block
// of "Key: value" headers, an indented content block and a list of typed,
// directed edges, each of which may carry nested metadata sections.
//
//	AIP/1.0
//	Node: aip://shop/catalog
//	Fetch: https://shop.example/catalog
//	Title: Catalog
//	Description: Browse products
//	Content:
//	  Welcome to the catalog.
//	Edges:
//	  search QRY GET /search - Search products
//	    Input:
//	      q: string
//
// The parser is a single forward pass over the trimmed lines, switching
// between three modes (header, content, edges) on the "Content:" and
// "Edges:" marker lines. Indentation is significant in the edge block:
// exactly two spaces starts an edge, four or more spaces is metadata for the
// current edge.
//
// Usage:
//
//	node, err := aipparser.Parse(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, issue := range aipparser.Issues(node) {
//	    fmt.Println("warning:", issue)
//	}
//
// Structural problems are reported as *FormatError and no Node is returned.
// Validation never fails; it only reports advisory diagnostics.
package aipparser
