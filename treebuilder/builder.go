// Package treebuilder converts a stream of lexical HTML tokens into
// tree-construction events, implementing the HTML5 tree construction
// algorithm: insertion modes, scope queries, active formatting elements with
// the adoption agency repair, table foster parenting, and quirks-mode
// detection. It is error-tolerant end to end; malformed input is repaired,
// never rejected.
package treebuilder

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/atom"
)

type insertionMode uint

const (
	initial insertionMode = iota
	beforeHTML
	beforeHead
	inHead
	inHeadNoscript
	afterHead
	inBody
	text
	inTable
	inTableText
	inCaption
	inColumnGroup
	inTableBody
	inRow
	inCell
	inSelect
	inSelectInTable
	inTemplate
	afterBody
	inFrameset
	afterFrameset
	afterAfterBody
	afterAfterFrameset
)

var modeNames = [...]string{
	"initial", "beforeHTML", "beforeHead", "inHead", "inHeadNoscript",
	"afterHead", "inBody", "text", "inTable", "inTableText", "inCaption",
	"inColumnGroup", "inTableBody", "inRow", "inCell", "inSelect",
	"inSelectInTable", "inTemplate", "afterBody", "inFrameset",
	"afterFrameset", "afterAfterBody", "afterAfterFrameset",
}

func (m insertionMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// QuirksMode is the document-wide rendering-compatibility flag derived from
// the first DOCTYPE token.
type QuirksMode uint

const (
	NoQuirks QuirksMode = iota
	LimitedQuirks
	Quirks
)

func (q QuirksMode) String() string {
	switch q {
	case LimitedQuirks:
		return "limited-quirks"
	case Quirks:
		return "quirks"
	}
	return "no-quirks"
}

// parseError records a recoverable deviation in the input. Parse errors are
// logged and never surfaced to the caller; recovery is part of the
// algorithm.
type parseError uint

const (
	noError parseError = iota
	generalParseError
)

type modeHandler func(t *Token) (bool, insertionMode, parseError)

type openElement[N comparable] struct {
	name string
	a    atom.Atom
	id   N
}

// TreeBuilder holds the state of the tree construction phase. A builder is
// constructed around a sink, run to completion over one token stream, and
// then done; it is single-writer and never shared.
type TreeBuilder[N comparable] struct {
	sink             TreeSink[N]
	mode             insertionMode
	originalMode     insertionMode
	quirks           QuirksMode
	openElements     []openElement[N]
	activeFormatting []formattingEntry[N]
	templateModes    []insertionMode
	context          *FragmentContext
	formElement      *N
	fosterParenting  bool
	scriptingEnabled bool
	framesetOK       bool
	headSeen         bool

	// textBuffer coalesces consecutive character tokens so sinks never see
	// fragmented runs; textFoster marks a run that must be foster-parented
	// when flushed. tableText holds the pending run owned by inTableText.
	textBuffer   strings.Builder
	textFoster   bool
	tableText    strings.Builder
	tableTextRaw bool

	mappings map[insertionMode]modeHandler
	log      *logrus.Entry
}

// New creates a TreeBuilder that emits construction events to sink.
func New[N comparable](sink TreeSink[N]) *TreeBuilder[N] {
	b := &TreeBuilder[N]{
		sink:       sink,
		framesetOK: true,
		log:        logrus.WithField("component", "treebuilder"),
	}
	b.createMappings()
	return b
}

func (b *TreeBuilder[N]) createMappings() {
	b.mappings = map[insertionMode]modeHandler{
		initial:            b.initialModeHandler,
		beforeHTML:         b.beforeHTMLModeHandler,
		beforeHead:         b.beforeHeadModeHandler,
		inHead:             b.inHeadModeHandler,
		inHeadNoscript:     b.inHeadNoscriptModeHandler,
		afterHead:          b.afterHeadModeHandler,
		inBody:             b.inBodyModeHandler,
		text:               b.textModeHandler,
		inTable:            b.inTableModeHandler,
		inTableText:        b.inTableTextModeHandler,
		inCaption:          b.inCaptionModeHandler,
		inColumnGroup:      b.inColumnGroupModeHandler,
		inTableBody:        b.inTableBodyModeHandler,
		inRow:              b.inRowModeHandler,
		inCell:             b.inCellModeHandler,
		inSelect:           b.inSelectModeHandler,
		inSelectInTable:    b.inSelectInTableModeHandler,
		inTemplate:         b.inTemplateModeHandler,
		afterBody:          b.afterBodyModeHandler,
		inFrameset:         b.inFramesetModeHandler,
		afterFrameset:      b.afterFramesetModeHandler,
		afterAfterBody:     b.afterAfterBodyModeHandler,
		afterAfterFrameset: b.afterAfterFramesetModeHandler,
	}
}

// SetScriptingEnabled controls how noscript elements are parsed. It must be
// called before Build.
func (b *TreeBuilder[N]) SetScriptingEnabled(enabled bool) {
	b.scriptingEnabled = enabled
}

// QuirksMode reports the mode chosen from the document's DOCTYPE; before a
// DOCTYPE is seen it reports NoQuirks.
func (b *TreeBuilder[N]) QuirksMode() QuirksMode {
	return b.quirks
}

// maxReprocess bounds how many times one real token may be rehandled after
// "act as if"-style mode switches. A single token can only trigger a handful
// of implied insertions, so running into this budget means a dispatcher bug,
// not bad input.
const maxReprocess = 10

// Build runs the token stream to completion. An EndOfFile token is implied
// if the stream lacks one, so every open element is always popped and ended.
func (b *TreeBuilder[N]) Build(tokens []*Token) error {
	sawEOF := false
	for i, t := range tokens {
		if err := b.processToken(t); err != nil {
			return errors.Wrapf(err, "token %d (%s)", i, t)
		}
		if t.TokenType == EndOfFileToken {
			sawEOF = true
			break
		}
	}
	if !sawEOF {
		return b.processToken(EndOfFile())
	}
	return nil
}

// BuildTree parses a full document token stream into sink.
func BuildTree[N comparable](tokens []*Token, sink TreeSink[N]) error {
	return New(sink).Build(tokens)
}

func (b *TreeBuilder[N]) processToken(t *Token) error {
	for budget := 0; ; budget++ {
		if budget >= maxReprocess {
			return errors.Errorf("treebuilder: reprocess budget exhausted in mode %s", b.mode)
		}

		// Pending character runs are flushed before any non-character token
		// is handled, except while inTableText owns the run.
		if t.TokenType != CharacterToken && b.mode != inTableText {
			b.flushText()
		}

		b.log.WithFields(logrus.Fields{"mode": b.mode, "token": t}).Trace("process token")
		reprocess, next, err := b.mappings[b.mode](t)
		if err != noError {
			b.log.WithFields(logrus.Fields{"mode": b.mode, "token": t}).Trace("parse error")
		}
		b.mode = next
		if !reprocess {
			return nil
		}
	}
}

// useRulesFor processes t with the rules of ruleMode while staying in
// returnMode, unless the delegated handler itself switched modes.
func (b *TreeBuilder[N]) useRulesFor(t *Token, returnMode, ruleMode insertionMode) (bool, insertionMode, parseError) {
	reprocess, next, err := b.mappings[ruleMode](t)
	if next == ruleMode {
		return reprocess, returnMode, err
	}
	return reprocess, next, err
}

func (b *TreeBuilder[N]) currentNode() *openElement[N] {
	if len(b.openElements) == 0 {
		return nil
	}
	return &b.openElements[len(b.openElements)-1]
}

func (b *TreeBuilder[N]) currentAtom() atom.Atom {
	if cur := b.currentNode(); cur != nil {
		return cur.a
	}
	return 0
}

func (b *TreeBuilder[N]) push(name string, id N) {
	b.openElements = append(b.openElements, openElement[N]{name: name, a: tagAtom(name), id: id})
}

// popCurrent pops the current node and emits its end event.
func (b *TreeBuilder[N]) popCurrent() {
	n := len(b.openElements)
	if n == 0 {
		return
	}
	top := b.openElements[n-1]
	b.openElements = b.openElements[:n-1]
	b.sink.EndElement(top.name)
}

// popThrough pops and ends elements until tag (inclusive) has been popped.
func (b *TreeBuilder[N]) popThrough(tag string) {
	for len(b.openElements) > 0 {
		top := b.currentNode().name
		b.popCurrent()
		if top == tag {
			return
		}
	}
}

func (b *TreeBuilder[N]) popAll() {
	for len(b.openElements) > 0 {
		b.popCurrent()
	}
}

func (b *TreeBuilder[N]) stackIndexOf(id N) int {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		if b.openElements[i].id == id {
			return i
		}
	}
	return -1
}

func (b *TreeBuilder[N]) stackHasTemplate() bool {
	for i := range b.openElements {
		if b.openElements[i].a == atom.Template {
			return true
		}
	}
	return false
}

// lastTable returns the id of the nearest open table element.
func (b *TreeBuilder[N]) lastTable() (N, bool) {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		if b.openElements[i].a == atom.Table {
			return b.openElements[i].id, true
		}
	}
	var zero N
	return zero, false
}

// insertElement emits a start event for t and pushes the element unless it
// is void or flagged self-closing. When foster parenting is on and a table
// is open, the new node is relocated to just before that table.
func (b *TreeBuilder[N]) insertElement(t *Token) N {
	void := voidElements.contains(tagAtom(t.TagName))
	id := b.sink.StartElement(t.TagName, t.Attributes, t.SelfClosing || void)
	b.maybeFoster(id)
	if !void && !t.SelfClosing {
		b.push(t.TagName, id)
	}
	return id
}

// insertImplied synthesizes a start tag with no attributes, for the implied
// html/head/body/colgroup/tbody/tr insertions.
func (b *TreeBuilder[N]) insertImplied(name string) N {
	return b.insertElement(StartTag(name, nil))
}

func (b *TreeBuilder[N]) maybeFoster(id N) {
	// Relocation only applies when the node would otherwise land directly
	// inside the table family; content nested deeper stays put.
	if !b.fosterParenting || !tableContextAtoms.contains(b.currentAtom()) {
		return
	}
	if table, ok := b.lastTable(); ok {
		b.sink.FosterParent(table, id)
	}
}

func (b *TreeBuilder[N]) flushText() {
	if b.textBuffer.Len() == 0 {
		return
	}
	data := b.textBuffer.String()
	b.textBuffer.Reset()
	id := b.sink.Text(data)
	if b.textFoster {
		if table, ok := b.lastTable(); ok {
			b.sink.FosterParent(table, id)
		}
	}
	b.textFoster = false
}

// generateImpliedEndTags pops and ends elements from the implied-end set,
// except one matching the excluded tag name.
func (b *TreeBuilder[N]) generateImpliedEndTags(except string) {
	for {
		cur := b.currentNode()
		if cur == nil || !impliedEndElements.contains(cur.a) || cur.name == except {
			return
		}
		b.popCurrent()
	}
}

// closePElement closes an open p element if one is in button scope.
func (b *TreeBuilder[N]) closePElement() {
	if !b.hasElementInButtonScope("p") {
		return
	}
	b.generateImpliedEndTags("p")
	b.popThrough("p")
}
