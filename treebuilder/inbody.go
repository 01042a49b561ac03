package treebuilder

import (
	"strings"

	"golang.org/x/net/html/atom"
)

func (b *TreeBuilder[N]) inBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		if t.Data == "\u0000" {
			return false, inBody, generalParseError
		}
		b.reconstructActiveFormattingElements()
		b.textBuffer.WriteString(t.Data)
		if b.fosterParenting && tableContextAtoms.contains(b.currentAtom()) {
			b.textFoster = true
		}
		if !t.isWhitespace() {
			b.framesetOK = false
		}
		return false, inBody, noError
	case CommentToken:
		b.sink.Comment(t.Data)
		return false, inBody, noError
	case DocTypeToken:
		return false, inBody, generalParseError
	case StartTagToken:
		return b.inBodyStartTag(t)
	case EndTagToken:
		return b.inBodyEndTag(t)
	case EndOfFileToken:
		if len(b.templateModes) > 0 {
			return b.useRulesFor(t, inBody, inTemplate)
		}
		b.popAll()
		return false, inBody, noError
	}
	return false, inBody, noError
}

func (b *TreeBuilder[N]) inBodyStartTag(t *Token) (bool, insertionMode, parseError) {
	switch tagAtom(t.TagName) {
	case atom.Html, atom.Body:
		return false, inBody, generalParseError
	case atom.Base, atom.Basefont, atom.Bgsound, atom.Link, atom.Meta,
		atom.Noframes, atom.Script, atom.Style, atom.Template, atom.Title:
		return b.useRulesFor(t, inBody, inHead)
	case atom.Frameset:
		if !b.framesetOK {
			return false, inBody, generalParseError
		}
		for len(b.openElements) > 1 {
			b.popCurrent()
		}
		b.insertElement(t)
		return false, inFrameset, generalParseError
	case atom.Address, atom.Article, atom.Aside, atom.Blockquote, atom.Center,
		atom.Details, atom.Dialog, atom.Dir, atom.Div, atom.Dl, atom.Fieldset,
		atom.Figcaption, atom.Figure, atom.Footer, atom.Header, atom.Hgroup,
		atom.Main, atom.Menu, atom.Nav, atom.Ol, atom.P, atom.Section,
		atom.Summary, atom.Ul:
		b.closePElement()
		b.insertElement(t)
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		b.closePElement()
		err := noError
		if headingElements.contains(b.currentAtom()) {
			// A heading inside a heading closes it first.
			b.popCurrent()
			err = generalParseError
		}
		b.insertElement(t)
		return false, inBody, err
	case atom.Pre, atom.Listing:
		b.closePElement()
		b.insertElement(t)
		b.framesetOK = false
	case atom.Form:
		if b.formElement != nil && !b.stackHasTemplate() {
			return false, inBody, generalParseError
		}
		b.closePElement()
		id := b.insertElement(t)
		if !b.stackHasTemplate() {
			b.formElement = &id
		}
	case atom.Li:
		b.framesetOK = false
		b.closeOpenListItem(atom.Li)
		b.closePElement()
		b.insertElement(t)
	case atom.Dd, atom.Dt:
		b.framesetOK = false
		b.closeOpenListItem(atom.Dd, atom.Dt)
		b.closePElement()
		b.insertElement(t)
	case atom.Plaintext:
		b.closePElement()
		b.insertElement(t)
		b.originalMode = b.mode
		return false, text, noError
	case atom.Button:
		err := noError
		if b.hasElementInScope("button") {
			err = b.runAdoptionAgency("button")
			if err == noError {
				err = generalParseError
			}
		}
		b.reconstructActiveFormattingElements()
		b.insertElement(t)
		b.pushFormattingMarker()
		b.framesetOK = false
		return false, inBody, err
	case atom.A:
		err := noError
		if b.findFormatting("a") != -1 {
			// Nested anchors are repaired before opening the new one.
			err = b.runAdoptionAgency("a")
			if err == noError {
				err = generalParseError
			}
		}
		b.reconstructActiveFormattingElements()
		id := b.insertElement(t)
		b.pushFormattingElement(t, id)
		return false, inBody, err
	case atom.B, atom.Big, atom.Code, atom.Em, atom.Font, atom.I, atom.S,
		atom.Small, atom.Strike, atom.Strong, atom.Tt, atom.U:
		b.reconstructActiveFormattingElements()
		id := b.insertElement(t)
		b.pushFormattingElement(t, id)
	case atom.Nobr:
		b.reconstructActiveFormattingElements()
		err := noError
		if b.hasElementInScope("nobr") {
			err = b.runAdoptionAgency("nobr")
			b.reconstructActiveFormattingElements()
		}
		id := b.insertElement(t)
		b.pushFormattingElement(t, id)
		return false, inBody, err
	case atom.Applet, atom.Marquee, atom.Object:
		b.reconstructActiveFormattingElements()
		b.insertElement(t)
		b.pushFormattingMarker()
		b.framesetOK = false
	case atom.Table:
		b.closePElement()
		b.insertElement(t)
		b.pushFormattingMarker()
		b.framesetOK = false
		return false, inTable, noError
	case atom.Area, atom.Br, atom.Embed, atom.Img, atom.Keygen, atom.Wbr:
		b.reconstructActiveFormattingElements()
		b.insertElement(t)
		b.framesetOK = false
	case atom.Input:
		b.reconstructActiveFormattingElements()
		b.insertElement(t)
		if typ, ok := t.Attributes["type"]; !ok || !strings.EqualFold(typ, "hidden") {
			b.framesetOK = false
		}
	case atom.Param, atom.Source, atom.Track:
		b.insertElement(t)
	case atom.Hr:
		b.closePElement()
		b.insertElement(t)
		b.framesetOK = false
	case atom.Image:
		// A start tag everyone writes, no element defines.
		t.TagName = "img"
		return true, inBody, generalParseError
	case atom.Textarea:
		b.insertElement(t)
		b.framesetOK = false
		b.originalMode = b.mode
		return false, text, noError
	case atom.Xmp:
		b.closePElement()
		b.reconstructActiveFormattingElements()
		b.framesetOK = false
		b.insertElement(t)
		b.originalMode = b.mode
		return false, text, noError
	case atom.Iframe:
		b.framesetOK = false
		b.insertElement(t)
		b.originalMode = b.mode
		return false, text, noError
	case atom.Noembed:
		b.insertElement(t)
		b.originalMode = b.mode
		return false, text, noError
	case atom.Noscript:
		if b.scriptingEnabled {
			b.insertElement(t)
			b.originalMode = b.mode
			return false, text, noError
		}
		b.reconstructActiveFormattingElements()
		b.insertElement(t)
	case atom.Select:
		b.reconstructActiveFormattingElements()
		b.insertElement(t)
		b.framesetOK = false
		if b.hasElementInTableScope("table") {
			return false, inSelectInTable, noError
		}
		return false, inSelect, noError
	case atom.Optgroup, atom.Option:
		if b.currentAtom() == atom.Option {
			b.popCurrent()
		}
		b.reconstructActiveFormattingElements()
		b.insertElement(t)
	case atom.Rb, atom.Rtc:
		if b.hasElementInScope("ruby") {
			b.generateImpliedEndTags("")
		}
		b.insertElement(t)
	case atom.Rp, atom.Rt:
		if b.hasElementInScope("ruby") {
			b.generateImpliedEndTags("rtc")
		}
		b.insertElement(t)
	case atom.Math, atom.Svg:
		b.reconstructActiveFormattingElements()
		b.insertElement(t)
	case atom.Caption, atom.Col, atom.Colgroup, atom.Frame, atom.Head,
		atom.Tbody, atom.Td, atom.Tfoot, atom.Th, atom.Thead, atom.Tr:
		return false, inBody, generalParseError
	default:
		b.reconstructActiveFormattingElements()
		b.insertElement(t)
	}
	return false, inBody, noError
}

func (b *TreeBuilder[N]) inBodyEndTag(t *Token) (bool, insertionMode, parseError) {
	switch tagAtom(t.TagName) {
	case atom.Template:
		return b.useRulesFor(t, inBody, inHead)
	case atom.Body:
		if !b.hasElementInScope("body") {
			return false, inBody, generalParseError
		}
		return false, afterBody, noError
	case atom.Html:
		if !b.hasElementInScope("body") {
			return false, inBody, generalParseError
		}
		return true, afterBody, noError
	case atom.Address, atom.Article, atom.Aside, atom.Blockquote, atom.Button,
		atom.Center, atom.Details, atom.Dialog, atom.Dir, atom.Div, atom.Dl,
		atom.Fieldset, atom.Figcaption, atom.Figure, atom.Footer, atom.Header,
		atom.Hgroup, atom.Listing, atom.Main, atom.Menu, atom.Nav, atom.Ol,
		atom.Pre, atom.Section, atom.Summary, atom.Ul:
		if !b.hasElementInScope(t.TagName) {
			return false, inBody, generalParseError
		}
		b.generateImpliedEndTags("")
		b.popThrough(t.TagName)
	case atom.Form:
		node := b.formElement
		b.formElement = nil
		if !b.stackHasTemplate() && node == nil {
			return false, inBody, generalParseError
		}
		if !b.hasElementInScope("form") {
			return false, inBody, generalParseError
		}
		b.generateImpliedEndTags("")
		b.popThrough("form")
	case atom.P:
		if !b.hasElementInButtonScope("p") {
			// Synthesize an empty p so the end tag has something to close.
			b.insertImplied("p")
			b.closePElement()
			return false, inBody, generalParseError
		}
		b.closePElement()
	case atom.Li:
		if !b.hasElementInListItemScope("li") {
			return false, inBody, generalParseError
		}
		b.generateImpliedEndTags("li")
		b.popThrough("li")
	case atom.Dd, atom.Dt:
		if !b.hasElementInScope(t.TagName) {
			return false, inBody, generalParseError
		}
		b.generateImpliedEndTags(t.TagName)
		b.popThrough(t.TagName)
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		if !b.hasHeadingInScope() {
			return false, inBody, generalParseError
		}
		b.generateImpliedEndTags("")
		for len(b.openElements) > 0 {
			heading := headingElements.contains(b.currentAtom())
			b.popCurrent()
			if heading {
				break
			}
		}
	case atom.Applet, atom.Marquee, atom.Object:
		if !b.hasElementInScope(t.TagName) {
			return false, inBody, generalParseError
		}
		b.generateImpliedEndTags("")
		b.popThrough(t.TagName)
		b.clearFormattingToMarker()
	case atom.Br:
		// </br> acts as <br>.
		b.reconstructActiveFormattingElements()
		b.insertElement(StartTag("br", nil))
		b.framesetOK = false
		return false, inBody, generalParseError
	default:
		if formattingElements.contains(tagAtom(t.TagName)) {
			fallback, err := b.adoptionAgency(t)
			if fallback {
				err = b.anyOtherEndTagInBody(t)
			}
			return false, inBody, err
		}
		return false, inBody, b.anyOtherEndTagInBody(t)
	}
	return false, inBody, noError
}

// anyOtherEndTagInBody searches the stack top-down for the first element
// matching the end tag and pops everything above and including it. The scan
// stops (and the token is ignored) at a special element; unmatched end tags
// have no effect.
func (b *TreeBuilder[N]) anyOtherEndTagInBody(t *Token) parseError {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		node := b.openElements[i]
		if node.name == t.TagName {
			b.generateImpliedEndTags(t.TagName)
			for len(b.openElements) > i {
				b.popCurrent()
			}
			return noError
		}
		if specialElements.contains(node.a) {
			return generalParseError
		}
	}
	return generalParseError
}

// runAdoptionAgency drives the adoption agency for a synthesized end tag,
// falling back to the ordinary end-tag scan when the algorithm declines.
func (b *TreeBuilder[N]) runAdoptionAgency(tag string) parseError {
	t := EndTag(tag)
	fallback, err := b.adoptionAgency(t)
	if fallback {
		return b.anyOtherEndTagInBody(t)
	}
	return err
}

// closeOpenListItem implements the li/dd/dt loop: an open item of the same
// family is closed before the new one opens, unless a non-container special
// element intervenes.
func (b *TreeBuilder[N]) closeOpenListItem(items ...atom.Atom) {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		node := b.openElements[i]
		for _, item := range items {
			if node.a == item {
				b.generateImpliedEndTags(node.name)
				b.popThrough(node.name)
				return
			}
		}
		if specialElements.contains(node.a) &&
			node.a != atom.Address && node.a != atom.Div && node.a != atom.P {
			return
		}
	}
}
