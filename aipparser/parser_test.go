package aipparser

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalNode = "AIP/1.0\nNode: aip://x\nFetch: http://x\nTitle: t\nDescription: d\nContent:\n  hi\nEdges:\n  e1 NAV GET /next - go\n"

const catalogNode = `
AIP/1.0
Node: aip://shop/catalog
Fetch: https://shop.example/catalog
Title: Catalog
Description: Browse products
Owner: team-shop

Content:
  Welcome to the catalog.

  Pick a product or search.
Edges:
  home NAV GET aip://shop/ - Back to the front page
  search QRY GET /search - Search products
    Input:
      q: string (required)
      limit: int
    Output:
      results: list
  buy ACT POST /cart - Add an item to the cart
    needs login
    Input:
      sku: string
  again NAV GET self - Reload this page
`

func mustParse(t *testing.T, src string) *Node {
	t.Helper()
	n, err := ParseString(src)
	require.NoError(t, err)
	return n
}

func requireFormatError(t *testing.T, src, contains string) *FormatError {
	t.Helper()
	n, err := ParseString(src)
	require.Error(t, err)
	assert.Nil(t, n)
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Error(), contains)
	return fe
}

func TestParseMinimalNode(t *testing.T) {
	n, err := Parse([]byte(minimalNode))
	require.NoError(t, err)
	assert.Equal(t, "1.0", n.Version)
	assert.Equal(t, "aip://x", n.NodeURI)
	assert.Equal(t, "http://x", n.FetchURI)
	assert.Equal(t, "t", n.Title)
	assert.Equal(t, "d", n.Description)
	assert.Equal(t, []string{"hi"}, n.Content)

	require.Len(t, n.Edges, 1)
	e := n.Edges[0]
	assert.Equal(t, "e1", e.ID)
	assert.Equal(t, "NAV", e.Kind)
	assert.Equal(t, "GET", e.Method)
	assert.Equal(t, "/next", e.Target)
	assert.Equal(t, "go", e.Summary)
	assert.Empty(t, e.Meta)
}

func TestParseCatalogNode(t *testing.T) {
	n := mustParse(t, catalogNode)

	assert.Equal(t, "Catalog", n.Title)
	owner, ok := n.Header("Owner")
	assert.True(t, ok)
	assert.Equal(t, "team-shop", owner)

	assert.Equal(t, []string{"Welcome to the catalog.", "", "Pick a product or search."}, n.Content)
	require.Len(t, n.Edges, 4)

	search := n.Edge("search")
	require.NotNil(t, search)
	assert.Equal(t, "QRY", search.Kind)
	assert.Equal(t, []string{"Input", "Output"}, search.SectionNames())
	input, ok := search.Section("Input")
	require.True(t, ok)
	assert.Equal(t, []string{"q: string (required)", "limit: int"}, input.Values)
	output, ok := search.Section("Output")
	require.True(t, ok)
	assert.Equal(t, []string{"results: list"}, output.Values)

	buy := n.Edge("buy")
	require.NotNil(t, buy)
	assert.Equal(t, []Section{
		{Name: ImplicitSection, Values: []string{"needs login"}},
		{Name: "Input", Values: []string{"sku: string"}},
	}, buy.Meta)

	again := n.Edge("again")
	require.NotNil(t, again)
	assert.True(t, again.IsSelf())

	assert.Len(t, n.EdgesByKind(KindNav), 2)
	assert.Nil(t, n.Edge("missing"))
}

func TestParseMissingVersionHeader(t *testing.T) {
	src := strings.Replace(minimalNode, "AIP/1.0", "XIP/1.0", 1)
	fe := requireFormatError(t, src, "AIP/<version>")
	assert.Equal(t, 1, fe.Line)
}

func TestParseEmptyInput(t *testing.T) {
	requireFormatError(t, "", "AIP/<version>")
	requireFormatError(t, "\n  \n\t\n", "AIP/<version>")
}

func TestParseEmptyVersion(t *testing.T) {
	requireFormatError(t, strings.Replace(minimalNode, "AIP/1.0", "AIP/  ", 1), "empty version")
}

func TestParseVersionIsTrimmed(t *testing.T) {
	n := mustParse(t, strings.Replace(minimalNode, "AIP/1.0", "AIP/ 2.1 ", 1))
	assert.Equal(t, "2.1", n.Version)
}

func TestParseMissingRequiredField(t *testing.T) {
	for _, key := range []string{"Node", "Fetch", "Title", "Description"} {
		t.Run(key, func(t *testing.T) {
			var kept []string
			for _, line := range strings.Split(minimalNode, "\n") {
				if strings.HasPrefix(line, key+":") {
					continue
				}
				kept = append(kept, line)
			}
			requireFormatError(t, strings.Join(kept, "\n"), "missing required field: "+key)
		})
	}
}

func TestParseMissingFieldsReportedInOrder(t *testing.T) {
	src := "AIP/1.0\nTitle: t\nContent:\nEdges:\n"
	requireFormatError(t, src, "missing required field: Node")
}

func TestParseInvalidHeaderLine(t *testing.T) {
	src := strings.Replace(minimalNode, "Title: t", "Title t", 1)
	fe := requireFormatError(t, src, "invalid header line")
	assert.Equal(t, 4, fe.Line)
}

func TestParseDuplicateHeaderLastWins(t *testing.T) {
	src := strings.Replace(minimalNode, "Title: t\n", "Title: first\nTitle: second\n", 1)
	n := mustParse(t, src)
	assert.Equal(t, "second", n.Title)
}

func TestParseHeaderValueMayContainColons(t *testing.T) {
	n := mustParse(t, minimalNode)
	assert.Equal(t, "aip://x", n.NodeURI)
	assert.Equal(t, "http://x", n.FetchURI)
}

func TestParseBlankHeaderLinesSkipped(t *testing.T) {
	src := strings.Replace(minimalNode, "Title: t\n", "\n\nTitle: t\n\n", 1)
	n := mustParse(t, src)
	assert.Equal(t, "t", n.Title)
}

func TestParseMissingContentMarker(t *testing.T) {
	src := "AIP/1.0\nNode: aip://x\nFetch: http://x\nTitle: t\nDescription: d\nEdges:\n  e1 NAV GET /next - go\n"
	requireFormatError(t, src, "missing Content: section")
}

func TestParseMissingEdgesMarker(t *testing.T) {
	src := "AIP/1.0\nNode: aip://x\nFetch: http://x\nTitle: t\nDescription: d\nContent:\n  hi\n"
	requireFormatError(t, src, "missing Edges: section")
}

func TestParseEmptySections(t *testing.T) {
	n := mustParse(t, "AIP/1.0\nNode: aip://x\nFetch: http://x\nTitle: t\nDescription: d\nContent:\nEdges:\n")
	assert.Empty(t, n.Content)
	assert.NotNil(t, n.Content)
	assert.Empty(t, n.Edges)
	assert.NotNil(t, n.Edges)
}

func TestParseEdgesWithoutContentMarkerMentionedElsewhere(t *testing.T) {
	// The marker rule is a text search, so a header value mentioning
	// "Content:" satisfies it even though there is no content block.
	src := "AIP/1.0\nNode: aip://x\nFetch: http://x\nTitle: t\nDescription: see Content: below\nEdges:\n"
	n := mustParse(t, src)
	assert.Empty(t, n.Content)
}

func TestParseEdgesMarkerInHeaderSkipsContent(t *testing.T) {
	src := "AIP/1.0\nNode: aip://x\nFetch: http://x\nTitle: t\nDescription: d\nEdges:\n  e1 NAV GET /next - Content: none\n"
	n := mustParse(t, src)
	assert.Empty(t, n.Content)
	require.Len(t, n.Edges, 1)
	assert.Equal(t, "Content: none", n.Edges[0].Summary)
}

func TestParseContentLines(t *testing.T) {
	src := "AIP/1.0\nNode: aip://x\nFetch: http://x\nTitle: t\nDescription: d\nContent:\n  one\n\n    indented\nraw line\n  \nEdges:\n"
	n := mustParse(t, src)
	assert.Equal(t, []string{"one", "", "  indented", "raw line", ""}, n.Content)
}

func TestParseContentKeepsMarkersAsText(t *testing.T) {
	src := "AIP/1.0\nNode: aip://x\nFetch: http://x\nTitle: t\nDescription: d\nContent:\nContent: again\n  Edges: not a marker\nEdges:\n"
	n := mustParse(t, src)
	assert.Equal(t, []string{"Content: again", "Edges: not a marker"}, n.Content)
}

func TestParseTrimsDocumentBlankLines(t *testing.T) {
	src := "\n\n   \n" + minimalNode + "\n\n  \n"
	n := mustParse(t, src)
	assert.Equal(t, []string{"hi"}, n.Content)
	require.Len(t, n.Edges, 1)
	assert.Empty(t, n.Edges[0].Meta)
}

func TestParseTrailingBlankContentIsDropped(t *testing.T) {
	// Trailing blank lines of the document are gone before content mode
	// sees them. "Edges:" in the description satisfies the marker rule.
	src := "AIP/1.0\nNode: aip://x\nFetch: http://x\nTitle: t\nDescription: no Edges: here\nContent:\n  hi\n\n  there\n\n\n"
	n := mustParse(t, src)
	assert.Equal(t, []string{"hi", "", "there"}, n.Content)
	assert.Empty(t, n.Edges)
}

func TestParseCRLF(t *testing.T) {
	n := mustParse(t, strings.ReplaceAll(catalogNode, "\n", "\r\n"))
	assert.Equal(t, "Catalog", n.Title)
	assert.Len(t, n.Edges, 4)
	assert.Equal(t, "Back to the front page", n.Edges[0].Summary)
}

func TestParseEdgeLeftSideTooShort(t *testing.T) {
	src := strings.Replace(minimalNode, "e1 NAV GET /next - go", "e1 NAV GET - go", 1)
	fe := requireFormatError(t, src, "invalid edge left side")
	assert.Equal(t, 9, fe.Line)
}

func TestParseEdgeWithoutDelimiter(t *testing.T) {
	src := strings.Replace(minimalNode, "e1 NAV GET /next - go", "e1 NAV GET /next", 1)
	requireFormatError(t, src, "invalid edge line")
}

func TestParseEdgeSummaryKeepsLaterDelimiters(t *testing.T) {
	src := strings.Replace(minimalNode, "- go", "- go - now - please", 1)
	n := mustParse(t, src)
	assert.Equal(t, "go - now - please", n.Edges[0].Summary)
}

func TestParseMultiTokenTarget(t *testing.T) {
	src := strings.Replace(minimalNode, "/next", "/a   b\tc", 1)
	n := mustParse(t, src)
	assert.Equal(t, "/a b c", n.Edges[0].Target)
}

func TestParseOpenKindAndMethod(t *testing.T) {
	src := strings.Replace(minimalNode, "NAV GET", "WEIRD g3t", 1)
	n := mustParse(t, src)
	assert.Equal(t, "WEIRD", n.Edges[0].Kind)
	assert.Equal(t, "g3t", n.Edges[0].Method)
}

func TestParseMetadataBeforeEdge(t *testing.T) {
	src := "AIP/1.0\nNode: aip://x\nFetch: http://x\nTitle: t\nDescription: d\nContent:\nEdges:\n    Input:\n  e1 NAV GET /next - go\n"
	fe := requireFormatError(t, src, "edge metadata without an edge")
	assert.Equal(t, 8, fe.Line)
}

func TestParseUnexpectedIndentation(t *testing.T) {
	for name, line := range map[string]string{
		"none":  "e2 NAV GET /x - y",
		"one":   " e2 NAV GET /x - y",
		"three": "   e2 NAV GET /x - y",
		"tab":   "\te2 NAV GET /x - y",
	} {
		t.Run(name, func(t *testing.T) {
			requireFormatError(t, minimalNode+line+"\n", "unexpected indentation")
		})
	}
}

func TestParseBlankLinesInEdgeBlock(t *testing.T) {
	src := minimalNode + "\n    Input:\n\n      a\n\n  e2 NAV GET /b - b\n"
	n := mustParse(t, src)
	require.Len(t, n.Edges, 2)
	assert.Equal(t, []Section{{Name: "Input", Values: []string{"a"}}}, n.Edges[0].Meta)
}

func TestParseSectionHeaderRules(t *testing.T) {
	src := minimalNode + "    Input:\n    not a header:\n    Output:\n    Input:\n      again\n"
	n := mustParse(t, src)
	e := n.Edges[0]
	assert.Equal(t, []Section{
		{Name: "Input", Values: []string{"not a header:", "again"}},
		{Name: "Output", Values: []string{}},
	}, e.Meta)
}

func TestParseSectionResetsPerEdge(t *testing.T) {
	src := minimalNode + "    Input:\n      a\n  e2 NAV GET /b - b\n      orphan\n"
	n := mustParse(t, src)
	require.Len(t, n.Edges, 2)
	assert.Equal(t, []Section{{Name: ImplicitSection, Values: []string{"orphan"}}}, n.Edges[1].Meta)
}

func TestParseMetaDepthIsNotSignificant(t *testing.T) {
	src := minimalNode + "    Input:\n            deep\n    shallow\n"
	n := mustParse(t, src)
	input, ok := n.Edges[0].Section("Input")
	require.True(t, ok)
	assert.Equal(t, []string{"deep", "shallow"}, input.Values)
}

func TestParseConcurrentCalls(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := ParseString(catalogNode)
			if assert.NoError(t, err) {
				assert.Len(t, n.Edges, 4)
			}
		}()
	}
	wg.Wait()
}

func TestFormatErrorMessage(t *testing.T) {
	assert.Equal(t, "line 3: bad", (&FormatError{Message: "bad", Line: 3}).Error())
	assert.Equal(t, "bad", (&FormatError{Message: "bad"}).Error())
}
