package treebuilder

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// clearStackBackTo pops and ends elements until the current node is html or
// one of the given context atoms. Used before inserting sections, rows, and
// cells so they always land in a valid parent.
func (b *TreeBuilder[N]) clearStackBackTo(context ...atom.Atom) {
	for len(b.openElements) > 0 {
		cur := b.currentAtom()
		if cur == atom.Html || cur == atom.Template {
			return
		}
		for _, a := range context {
			if cur == a {
				return
			}
		}
		b.popCurrent()
	}
}

func (b *TreeBuilder[N]) clearStackBackToTable() {
	b.clearStackBackTo(atom.Table)
}

func (b *TreeBuilder[N]) clearStackBackToTableBody() {
	b.clearStackBackTo(atom.Tbody, atom.Tfoot, atom.Thead)
}

func (b *TreeBuilder[N]) clearStackBackToTableRow() {
	b.clearStackBackTo(atom.Tr)
}

// inTableAnythingElse delegates to the inBody rules with foster parenting
// enabled: content that is invalid inside a table is inserted just before
// the nearest open table instead.
func (b *TreeBuilder[N]) inTableAnythingElse(t *Token) (bool, insertionMode, parseError) {
	b.fosterParenting = true
	reprocess, next, _ := b.useRulesFor(t, inTable, inBody)
	b.fosterParenting = false
	return reprocess, next, generalParseError
}

var tableContextAtoms = newTagSet(atom.Table, atom.Tbody, atom.Tfoot, atom.Thead, atom.Tr)

func (b *TreeBuilder[N]) inTableModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		if tableContextAtoms.contains(b.currentAtom()) {
			// b.mode so the pending run returns to the delegating mode
			// (inTableBody, inRow) and not always to inTable.
			b.originalMode = b.mode
			b.tableText.Reset()
			b.tableTextRaw = false
			return true, inTableText, noError
		}
		return b.inTableAnythingElse(t)
	case CommentToken:
		b.sink.Comment(t.Data)
		return false, inTable, noError
	case DocTypeToken:
		return false, inTable, generalParseError
	case StartTagToken:
		switch tagAtom(t.TagName) {
		case atom.Caption:
			b.clearStackBackToTable()
			b.pushFormattingMarker()
			b.insertElement(t)
			return false, inCaption, noError
		case atom.Colgroup:
			b.clearStackBackToTable()
			b.insertElement(t)
			return false, inColumnGroup, noError
		case atom.Col:
			b.clearStackBackToTable()
			b.insertImplied("colgroup")
			return true, inColumnGroup, noError
		case atom.Tbody, atom.Tfoot, atom.Thead:
			b.clearStackBackToTable()
			b.insertElement(t)
			return false, inTableBody, noError
		case atom.Td, atom.Th, atom.Tr:
			b.clearStackBackToTable()
			b.insertImplied("tbody")
			return true, inTableBody, noError
		case atom.Table:
			// A table inside a table closes the outer one first.
			if !b.hasElementInTableScope("table") {
				return false, inTable, generalParseError
			}
			b.popThrough("table")
			return true, b.resetInsertionMode(), generalParseError
		case atom.Style, atom.Script, atom.Template:
			return b.useRulesFor(t, inTable, inHead)
		case atom.Input:
			if typ, ok := t.Attributes["type"]; !ok || !strings.EqualFold(typ, "hidden") {
				return b.inTableAnythingElse(t)
			}
			b.insertElement(t)
			return false, inTable, generalParseError
		case atom.Form:
			if b.stackHasTemplate() || b.formElement != nil {
				return false, inTable, generalParseError
			}
			id := b.insertElement(t)
			b.formElement = &id
			b.popCurrent()
			return false, inTable, generalParseError
		}
	case EndTagToken:
		switch tagAtom(t.TagName) {
		case atom.Table:
			if !b.hasElementInTableScope("table") {
				return false, inTable, generalParseError
			}
			b.popThrough("table")
			b.clearFormattingToMarker()
			return false, b.resetInsertionMode(), noError
		case atom.Body, atom.Caption, atom.Col, atom.Colgroup, atom.Html,
			atom.Tbody, atom.Td, atom.Tfoot, atom.Th, atom.Thead, atom.Tr:
			return false, inTable, generalParseError
		case atom.Template:
			return b.useRulesFor(t, inTable, inHead)
		}
	case EndOfFileToken:
		return b.useRulesFor(t, inTable, inBody)
	}
	return b.inTableAnythingElse(t)
}

// flushTableText decides for the whole pending run: an all-whitespace run is
// inserted normally, anything else is foster-parented before the table.
func (b *TreeBuilder[N]) flushTableText() {
	if b.tableText.Len() == 0 {
		return
	}
	data := b.tableText.String()
	b.tableText.Reset()
	id := b.sink.Text(data)
	if b.tableTextRaw {
		if table, ok := b.lastTable(); ok {
			b.sink.FosterParent(table, id)
		}
	}
	b.tableTextRaw = false
}

func (b *TreeBuilder[N]) inTableTextModeHandler(t *Token) (bool, insertionMode, parseError) {
	if t.TokenType == CharacterToken {
		if t.Data == "\u0000" {
			return false, inTableText, generalParseError
		}
		b.tableText.WriteString(t.Data)
		if !t.isWhitespace() {
			b.tableTextRaw = true
		}
		return false, inTableText, noError
	}
	b.flushTableText()
	return true, b.originalMode, noError
}

// closeCaption pops the caption and restores the table context.
func (b *TreeBuilder[N]) closeCaption() {
	b.generateImpliedEndTags("")
	b.popThrough("caption")
	b.clearFormattingToMarker()
}

func (b *TreeBuilder[N]) inCaptionModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case StartTagToken:
		switch tagAtom(t.TagName) {
		case atom.Caption, atom.Col, atom.Colgroup, atom.Tbody, atom.Td,
			atom.Tfoot, atom.Th, atom.Thead, atom.Tr:
			if !b.hasElementInTableScope("caption") {
				return false, inCaption, generalParseError
			}
			b.closeCaption()
			return true, inTable, generalParseError
		}
	case EndTagToken:
		switch tagAtom(t.TagName) {
		case atom.Caption:
			if !b.hasElementInTableScope("caption") {
				return false, inCaption, generalParseError
			}
			b.closeCaption()
			return false, inTable, noError
		case atom.Table:
			if !b.hasElementInTableScope("caption") {
				return false, inCaption, generalParseError
			}
			b.closeCaption()
			return true, inTable, generalParseError
		case atom.Body, atom.Col, atom.Colgroup, atom.Html, atom.Tbody,
			atom.Td, atom.Tfoot, atom.Th, atom.Thead, atom.Tr:
			return false, inCaption, generalParseError
		}
	}
	return b.useRulesFor(t, inCaption, inBody)
}

func (b *TreeBuilder[N]) inColumnGroupModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		if t.isWhitespace() {
			b.textBuffer.WriteString(t.Data)
			return false, inColumnGroup, noError
		}
	case CommentToken:
		b.sink.Comment(t.Data)
		return false, inColumnGroup, noError
	case DocTypeToken:
		return false, inColumnGroup, generalParseError
	case StartTagToken:
		switch tagAtom(t.TagName) {
		case atom.Html:
			return b.useRulesFor(t, inColumnGroup, inBody)
		case atom.Col:
			b.insertElement(t)
			return false, inColumnGroup, noError
		case atom.Template:
			return b.useRulesFor(t, inColumnGroup, inHead)
		}
	case EndTagToken:
		switch tagAtom(t.TagName) {
		case atom.Colgroup:
			if b.currentAtom() != atom.Colgroup {
				return false, inColumnGroup, generalParseError
			}
			b.popCurrent()
			return false, inTable, noError
		case atom.Col:
			return false, inColumnGroup, generalParseError
		case atom.Template:
			return b.useRulesFor(t, inColumnGroup, inHead)
		}
	case EndOfFileToken:
		return b.useRulesFor(t, inColumnGroup, inBody)
	}
	if b.currentAtom() != atom.Colgroup {
		return false, inColumnGroup, generalParseError
	}
	b.popCurrent()
	return true, inTable, noError
}

func (b *TreeBuilder[N]) inTableBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case StartTagToken:
		switch tagAtom(t.TagName) {
		case atom.Tr:
			b.clearStackBackToTableBody()
			b.insertElement(t)
			return false, inRow, noError
		case atom.Td, atom.Th:
			// A cell with no row gets one.
			b.clearStackBackToTableBody()
			b.insertImplied("tr")
			return true, inRow, generalParseError
		case atom.Caption, atom.Col, atom.Colgroup, atom.Tbody, atom.Tfoot, atom.Thead:
			if !b.hasSectionInTableScope() {
				return false, inTableBody, generalParseError
			}
			b.clearStackBackToTableBody()
			b.popCurrent()
			return true, inTable, noError
		}
	case EndTagToken:
		switch tagAtom(t.TagName) {
		case atom.Tbody, atom.Tfoot, atom.Thead:
			if !b.hasElementInTableScope(t.TagName) {
				return false, inTableBody, generalParseError
			}
			b.clearStackBackToTableBody()
			b.popCurrent()
			return false, inTable, noError
		case atom.Table:
			if !b.hasSectionInTableScope() {
				return false, inTableBody, generalParseError
			}
			b.clearStackBackToTableBody()
			b.popCurrent()
			return true, inTable, noError
		case atom.Body, atom.Caption, atom.Col, atom.Colgroup, atom.Html,
			atom.Td, atom.Th, atom.Tr:
			return false, inTableBody, generalParseError
		}
	}
	return b.useRulesFor(t, inTableBody, inTable)
}

func (b *TreeBuilder[N]) hasSectionInTableScope() bool {
	return b.hasElementInTableScope("tbody") ||
		b.hasElementInTableScope("thead") ||
		b.hasElementInTableScope("tfoot")
}

func (b *TreeBuilder[N]) inRowModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case StartTagToken:
		switch tagAtom(t.TagName) {
		case atom.Td, atom.Th:
			b.clearStackBackToTableRow()
			b.insertElement(t)
			b.pushFormattingMarker()
			return false, inCell, noError
		case atom.Caption, atom.Col, atom.Colgroup, atom.Tbody, atom.Tfoot,
			atom.Thead, atom.Tr:
			if !b.hasElementInTableScope("tr") {
				return false, inRow, generalParseError
			}
			b.clearStackBackToTableRow()
			b.popCurrent()
			return true, inTableBody, noError
		}
	case EndTagToken:
		switch tagAtom(t.TagName) {
		case atom.Tr:
			if !b.hasElementInTableScope("tr") {
				return false, inRow, generalParseError
			}
			b.clearStackBackToTableRow()
			b.popCurrent()
			return false, inTableBody, noError
		case atom.Table:
			if !b.hasElementInTableScope("tr") {
				return false, inRow, generalParseError
			}
			b.clearStackBackToTableRow()
			b.popCurrent()
			return true, inTableBody, noError
		case atom.Tbody, atom.Tfoot, atom.Thead:
			if !b.hasElementInTableScope(t.TagName) {
				return false, inRow, generalParseError
			}
			if !b.hasElementInTableScope("tr") {
				return false, inRow, noError
			}
			b.clearStackBackToTableRow()
			b.popCurrent()
			return true, inTableBody, noError
		case atom.Body, atom.Caption, atom.Col, atom.Colgroup, atom.Html,
			atom.Td, atom.Th:
			return false, inRow, generalParseError
		}
	}
	return b.useRulesFor(t, inRow, inTable)
}

// closeCell pops the open cell and returns to the row.
func (b *TreeBuilder[N]) closeCell() {
	b.generateImpliedEndTags("")
	for len(b.openElements) > 0 {
		cur := b.currentAtom()
		b.popCurrent()
		if cur == atom.Td || cur == atom.Th {
			break
		}
	}
	b.clearFormattingToMarker()
}

func (b *TreeBuilder[N]) inCellModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case StartTagToken:
		switch tagAtom(t.TagName) {
		case atom.Caption, atom.Col, atom.Colgroup, atom.Tbody, atom.Td,
			atom.Tfoot, atom.Th, atom.Thead, atom.Tr:
			if !b.hasElementInTableScope("td") && !b.hasElementInTableScope("th") {
				return false, inCell, generalParseError
			}
			b.closeCell()
			return true, inRow, noError
		}
	case EndTagToken:
		switch tagAtom(t.TagName) {
		case atom.Td, atom.Th:
			if !b.hasElementInTableScope(t.TagName) {
				return false, inCell, generalParseError
			}
			b.generateImpliedEndTags("")
			b.popThrough(t.TagName)
			b.clearFormattingToMarker()
			return false, inRow, noError
		case atom.Body, atom.Caption, atom.Col, atom.Colgroup, atom.Html:
			return false, inCell, generalParseError
		case atom.Table, atom.Tbody, atom.Tfoot, atom.Thead, atom.Tr:
			if !b.hasElementInTableScope(t.TagName) {
				return false, inCell, generalParseError
			}
			b.closeCell()
			return true, inRow, noError
		}
	}
	return b.useRulesFor(t, inCell, inBody)
}
