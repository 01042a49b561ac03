package treebuilder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/heathj/treebuild/domtree"
)

// buildDOM parses markup into a domtree document.
func buildDOM(t *testing.T, input string) *domtree.Node {
	t.Helper()
	sink := domtree.NewBuilder()
	require.NoError(t, BuildTree[*domtree.Node](tokenize(input), sink))
	return sink.Document()
}

func requireDump(t *testing.T, doc *domtree.Node, want string) {
	t.Helper()
	if diff := cmp.Diff(want, doc.Dump()); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestTableTextFosterParented(t *testing.T) {
	doc := buildDOM(t, "<table>foo<div>bar</div></table>")

	requireDump(t, doc, `| <html>
|   <head>
|   <body>
|     "foo"
|     <div>
|       "bar"
|     <table>
`)
}

func TestTableWhitespaceStaysInTable(t *testing.T) {
	doc := buildDOM(t, "<table>  </table>")

	requireDump(t, doc, `| <html>
|   <head>
|   <body>
|     <table>
|       "  "
`)
}

func TestTableRowAndCell(t *testing.T) {
	doc := buildDOM(t, "<table><tr><td>x</td></tr></table>")

	requireDump(t, doc, `| <html>
|   <head>
|   <body>
|     <table>
|       <tbody>
|         <tr>
|           <td>
|             "x"
`)
}

func TestTableImpliesSectionAndRow(t *testing.T) {
	doc := buildDOM(t, "<table><td>a<td>b</table>")

	requireDump(t, doc, `| <html>
|   <head>
|   <body>
|     <table>
|       <tbody>
|         <tr>
|           <td>
|             "a"
|           <td>
|             "b"
`)
}

func TestTableCaption(t *testing.T) {
	doc := buildDOM(t, "<table><caption>hi</table>")

	requireDump(t, doc, `| <html>
|   <head>
|   <body>
|     <table>
|       <caption>
|         "hi"
`)
}

func TestColImpliesColgroup(t *testing.T) {
	doc := buildDOM(t, "<table><col></table>")

	requireDump(t, doc, `| <html>
|   <head>
|   <body>
|     <table>
|       <colgroup>
|         <col>
`)
}

func TestNestedTableClosesOuterRowContext(t *testing.T) {
	events, _ := buildTrace(t, "<table><table>x</table>")

	requireBalanced(t, events)
}

func TestRowEndsWhenNextRowStarts(t *testing.T) {
	doc := buildDOM(t, "<table><tr><td>a<tr><td>b</table>")

	requireDump(t, doc, `| <html>
|   <head>
|   <body>
|     <table>
|       <tbody>
|         <tr>
|           <td>
|             "a"
|         <tr>
|           <td>
|             "b"
`)
}

func TestInputHiddenAllowedInTable(t *testing.T) {
	doc := buildDOM(t, `<table><input type="hidden"></table>`)

	table := doc.FirstChildElement("html").
		FirstChildElement("body").
		FirstChildElement("table")
	require.NotNil(t, table)
	require.NotNil(t, table.FirstChildElement("input"), "hidden input stays in the table")
}

func TestNonHiddenInputFosterParented(t *testing.T) {
	doc := buildDOM(t, `<table><input type="text"></table>`)

	body := doc.FirstChildElement("html").FirstChildElement("body")
	require.NotNil(t, body.FirstChildElement("input"), "input fostered before the table")
	require.Nil(t, body.FirstChildElement("table").FirstChildElement("input"))
}

func TestRawTextInCellReturnsToCell(t *testing.T) {
	// The textarea diversion inside a cell must hand back to the cell, so
	// the following td closes it as a sibling instead of nesting.
	doc := buildDOM(t, "<table><tr><td><textarea>a</textarea><td>b</table>")

	requireDump(t, doc, `| <html>
|   <head>
|   <body>
|     <table>
|       <tbody>
|         <tr>
|           <td>
|             <textarea>
|               "a"
|           <td>
|             "b"
`)
}

func TestRowTextReturnsToRow(t *testing.T) {
	// Pending character data collected inside a row hands back to the row,
	// so the following cell reuses it rather than implying a second
	// tbody/tr pair.
	doc := buildDOM(t, "<table><tr>x<td>y</table>")

	requireDump(t, doc, `| <html>
|   <head>
|   <body>
|     "x"
|     <table>
|       <tbody>
|         <tr>
|           <td>
|             "y"
`)
}

func TestSelectOptionsBecomeSiblings(t *testing.T) {
	doc := buildDOM(t, "<select><option>A<option>B</select>")

	requireDump(t, doc, `| <html>
|   <head>
|   <body>
|     <select>
|       <option>
|         "A"
|       <option>
|         "B"
`)
}

func TestSelectInTableEscapesOnTableTag(t *testing.T) {
	doc := buildDOM(t, "<table><tr><td><select><option>x<caption>y</table>")

	requireBalancedDoc(t, doc)
	td := doc.FirstChildElement("html").
		FirstChildElement("body").
		FirstChildElement("table").
		FirstChildElement("tbody").
		FirstChildElement("tr").
		FirstChildElement("td")
	require.NotNil(t, td)
	require.NotNil(t, td.FirstChildElement("select"), "select closed inside its cell")
}

func TestTemplateContentsParsed(t *testing.T) {
	doc := buildDOM(t, "<div><template><li>x</li></template></div>")

	requireDump(t, doc, `| <html>
|   <head>
|   <body>
|     <div>
|       <template>
|         <li>
|           "x"
`)
}

func TestTemplateRowContext(t *testing.T) {
	events, _ := buildTrace(t, "<template><tr><td>x</td></tr></template>")

	requireBalanced(t, events)
}

// requireBalancedDoc checks the builder did not leave stray open state by
// asserting every node's parent links are consistent.
func requireBalancedDoc(t *testing.T, doc *domtree.Node) {
	t.Helper()
	var walk func(n *domtree.Node)
	walk = func(n *domtree.Node) {
		for _, c := range n.Children {
			require.Same(t, n, c.Parent)
			walk(c)
		}
	}
	walk(doc)
}
