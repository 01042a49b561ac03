package treebuilder

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTrace parses markup and returns the resulting event trace.
func buildTrace(t *testing.T, input string) ([]string, *TreeBuilder[int]) {
	t.Helper()
	sink := newTraceSink()
	b := New[int](sink)
	require.NoError(t, b.Build(tokenize(input)))
	return sink.events, b
}

// requireBalanced checks that every start event is closed by a matching end
// event in properly nested order. Void elements never get an end event, so
// their starts are skipped.
func requireBalanced(t *testing.T, events []string) {
	t.Helper()
	var stack []string
	for _, ev := range events {
		switch {
		case strings.HasPrefix(ev, "start:"):
			name := strings.TrimPrefix(ev, "start:")
			if voidElements.contains(tagAtom(name)) {
				continue
			}
			stack = append(stack, name)
		case strings.HasPrefix(ev, "end:"):
			require.NotEmpty(t, stack, "end event %q with nothing open", ev)
			top := stack[len(stack)-1]
			require.Equal(t, top, strings.TrimPrefix(ev, "end:"), "mismatched end event")
			stack = stack[:len(stack)-1]
		}
	}
	require.Empty(t, stack, "unclosed elements at end of trace")
}

func TestImpliedDocumentStructure(t *testing.T) {
	events, b := buildTrace(t, "<p>Hello</p>")

	want := []string{
		"start:html", "start:head", "end:head", "start:body",
		"start:p", "text:Hello", "end:p",
		"end:body", "end:html",
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, Quirks, b.QuirksMode(), "no doctype means quirks")
}

func TestDoctypeEmittedFirst(t *testing.T) {
	events, b := buildTrace(t, "<!DOCTYPE html><p>Hello</p>")

	require.NotEmpty(t, events)
	assert.Equal(t, "doctype:html", events[0])
	assert.Equal(t, NoQuirks, b.QuirksMode())
	requireBalanced(t, events)
}

func TestVoidElementsEmitNoEndEvent(t *testing.T) {
	events, _ := buildTrace(t, "<p>a<br>b</p>")

	want := []string{
		"start:html", "start:head", "end:head", "start:body",
		"start:p", "text:a", "start:br", "text:b", "end:p",
		"end:body", "end:html",
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestMisnestedEndTagsStayBalanced(t *testing.T) {
	events, _ := buildTrace(t, "<div><span></div></span>")

	want := []string{
		"start:html", "start:head", "end:head", "start:body",
		"start:div", "start:span", "end:span", "end:div",
		"end:body", "end:html",
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestEofClosesAllOpenElements(t *testing.T) {
	events, _ := buildTrace(t, "<div><ul><li>")

	requireBalanced(t, events)
	n := len(events)
	require.GreaterOrEqual(t, n, 5)
	want := []string{"end:li", "end:ul", "end:div", "end:body", "end:html"}
	assert.Equal(t, want, events[n-5:])
}

func TestHeadingClosesOpenHeading(t *testing.T) {
	events, _ := buildTrace(t, "<h1>a<h2>b")

	want := []string{
		"start:html", "start:head", "end:head", "start:body",
		"start:h1", "text:a", "end:h1", "start:h2", "text:b", "end:h2",
		"end:body", "end:html",
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestListItemsCloseAsSiblings(t *testing.T) {
	events, _ := buildTrace(t, "<ul><li>a<li>b</ul>")

	want := []string{
		"start:html", "start:head", "end:head", "start:body",
		"start:ul",
		"start:li", "text:a", "end:li",
		"start:li", "text:b", "end:li",
		"end:ul",
		"end:body", "end:html",
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmatchedParagraphEndSynthesizesElement(t *testing.T) {
	events, _ := buildTrace(t, "<body>x</p>")

	want := []string{
		"start:html", "start:head", "end:head", "start:body",
		"text:x", "start:p", "end:p",
		"end:body", "end:html",
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestBrEndTagActsAsStartTag(t *testing.T) {
	events, _ := buildTrace(t, "</br>")

	assert.Contains(t, events, "start:br")
	for _, ev := range events {
		assert.NotEqual(t, "end:br", ev)
	}
	requireBalanced(t, events)
}

func TestCharacterRunsCoalesce(t *testing.T) {
	events, _ := buildTrace(t, "<p>one two three</p>")

	assert.Contains(t, events, "text:one two three")
}

func TestHeadContent(t *testing.T) {
	events, _ := buildTrace(t, "<title>hi</title><p>x")

	want := []string{
		"start:html", "start:head",
		"start:title", "text:hi", "end:title",
		"end:head", "start:body",
		"start:p", "text:x", "end:p",
		"end:body", "end:html",
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestHeadAccumulatesCharacters(t *testing.T) {
	// Character data in head buffers there until a start tag forces the
	// head closed.
	events, _ := buildTrace(t, "in<p>out")

	want := []string{
		"start:html", "start:head", "text:in", "end:head",
		"start:body", "start:p", "text:out", "end:p",
		"end:body", "end:html",
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestTextModeRestoresDelegatingMode(t *testing.T) {
	// script is handled with the head rules even inside body; the raw-text
	// diversion must return to body, not to the head rules' own mode.
	events, _ := buildTrace(t, "<p>a<script>s</script>b</p>")

	want := []string{
		"start:html", "start:head", "end:head", "start:body",
		"start:p", "text:a",
		"start:script", "text:s", "end:script",
		"text:b", "end:p",
		"end:body", "end:html",
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestDeeplyNestedTemplatesFinish(t *testing.T) {
	events, _ := buildTrace(t, strings.Repeat("<template>", 12))

	requireBalanced(t, events)
	opened := 0
	for _, ev := range events {
		if ev == "start:template" {
			opened++
		}
	}
	assert.Equal(t, 12, opened)
}

func TestEndTagStopsAtSpecialElement(t *testing.T) {
	// The top-down scan for an ordinary end tag gives up at a special
	// element, so the span stays open across the div.
	events, _ := buildTrace(t, "<span><div></span>")

	requireBalanced(t, events)
	div, span := -1, -1
	for i, ev := range events {
		if ev == "end:div" {
			div = i
		}
		if ev == "end:span" {
			span = i
		}
	}
	require.NotEqual(t, -1, div)
	require.NotEqual(t, -1, span)
	assert.Less(t, div, span, "span must outlive the div it contains")
}

func TestCommentsPassThrough(t *testing.T) {
	events, _ := buildTrace(t, "<!--first--><p>x</p><!--last-->")

	assert.Equal(t, "comment:first", events[0])
	assert.Contains(t, events, "comment:last")
	requireBalanced(t, events)
}

func TestTextAfterBodyGoesToBody(t *testing.T) {
	events, _ := buildTrace(t, "<p>x</p></body>y")

	requireBalanced(t, events)
	assert.Contains(t, events, "text:y")
}

func TestEmptyInput(t *testing.T) {
	events, b := buildTrace(t, "")

	want := []string{"start:html", "start:head", "end:head", "start:body", "end:body", "end:html"}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, Quirks, b.QuirksMode())
}

func TestExplicitDocumentUnchanged(t *testing.T) {
	events, _ := buildTrace(t, "<html><head></head><body><p>x</p></body></html>")

	want := []string{
		"start:html", "start:head", "end:head", "start:body",
		"start:p", "text:x", "end:p",
		"end:body", "end:html",
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestFramesetDocument(t *testing.T) {
	events, _ := buildTrace(t, "<frameset><frame></frameset>")

	requireBalanced(t, events)
	assert.Contains(t, events, "start:frameset")
	assert.Contains(t, events, "start:frame")
	for _, ev := range events {
		assert.NotEqual(t, "start:body", ev, "frameset documents have no body")
	}
}

func TestParagraphClosingStartTags(t *testing.T) {
	for _, tag := range []string{
		"address", "blockquote", "div", "dl", "fieldset", "h1", "hr",
		"menu", "ol", "p", "pre", "table", "ul",
	} {
		require.True(t, pClosingElements.contains(tagAtom(tag)), tag)

		events, _ := buildTrace(t, "<p>x<"+tag+">")
		closed, opened := -1, -1
		for i, ev := range events {
			if ev == "end:p" && closed == -1 {
				closed = i
			}
			if ev == "start:"+tag {
				opened = i
			}
		}
		require.NotEqual(t, -1, closed, "%s did not close the paragraph", tag)
		require.NotEqual(t, -1, opened)
		assert.Less(t, closed, opened, "%s must close p before opening", tag)
	}
}

func TestPlaintextSwallowsRest(t *testing.T) {
	events, _ := buildTrace(t, "<plaintext></plaintext><div>")

	requireBalanced(t, events)
	assert.Contains(t, events, "start:plaintext")
	assert.Contains(t, events, "text:</plaintext><div>")
}
