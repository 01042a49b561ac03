package treebuilder

import "golang.org/x/net/html/atom"

func (b *TreeBuilder[N]) inSelectModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		if t.Data == "\u0000" {
			return false, inSelect, generalParseError
		}
		b.textBuffer.WriteString(t.Data)
		return false, inSelect, noError
	case CommentToken:
		b.sink.Comment(t.Data)
		return false, inSelect, noError
	case DocTypeToken:
		return false, inSelect, generalParseError
	case StartTagToken:
		switch tagAtom(t.TagName) {
		case atom.Html:
			return b.useRulesFor(t, inSelect, inBody)
		case atom.Option:
			if b.currentAtom() == atom.Option {
				b.popCurrent()
			}
			b.insertElement(t)
			return false, inSelect, noError
		case atom.Optgroup:
			if b.currentAtom() == atom.Option {
				b.popCurrent()
			}
			if b.currentAtom() == atom.Optgroup {
				b.popCurrent()
			}
			b.insertElement(t)
			return false, inSelect, noError
		case atom.Select:
			// A nested select end-closes the open one.
			if !b.hasElementInSelectScope("select") {
				return false, inSelect, generalParseError
			}
			b.popThrough("select")
			return false, b.resetInsertionMode(), generalParseError
		case atom.Input, atom.Keygen, atom.Textarea:
			if !b.hasElementInSelectScope("select") {
				return false, inSelect, generalParseError
			}
			b.popThrough("select")
			return true, b.resetInsertionMode(), generalParseError
		case atom.Script, atom.Template:
			return b.useRulesFor(t, inSelect, inHead)
		}
	case EndTagToken:
		switch tagAtom(t.TagName) {
		case atom.Optgroup:
			if b.currentAtom() == atom.Option && len(b.openElements) > 1 &&
				b.openElements[len(b.openElements)-2].a == atom.Optgroup {
				b.popCurrent()
			}
			if b.currentAtom() != atom.Optgroup {
				return false, inSelect, generalParseError
			}
			b.popCurrent()
			return false, inSelect, noError
		case atom.Option:
			if b.currentAtom() != atom.Option {
				return false, inSelect, generalParseError
			}
			b.popCurrent()
			return false, inSelect, noError
		case atom.Select:
			if !b.hasElementInSelectScope("select") {
				return false, inSelect, generalParseError
			}
			b.popThrough("select")
			return false, b.resetInsertionMode(), noError
		case atom.Template:
			return b.useRulesFor(t, inSelect, inHead)
		}
	case EndOfFileToken:
		return b.useRulesFor(t, inSelect, inBody)
	}
	return false, inSelect, generalParseError
}

// inSelectInTable layers the table escape hatches over the select rules: a
// table-structure tag closes the select and lets the table mode deal with it.
func (b *TreeBuilder[N]) inSelectInTableModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch tagAtom(t.TagName) {
	case atom.Caption, atom.Table, atom.Tbody, atom.Tfoot, atom.Thead,
		atom.Tr, atom.Td, atom.Th:
		switch t.TokenType {
		case StartTagToken:
			b.popThrough("select")
			return true, b.resetInsertionMode(), generalParseError
		case EndTagToken:
			if !b.hasElementInTableScope(t.TagName) {
				return false, inSelectInTable, generalParseError
			}
			b.popThrough("select")
			return true, b.resetInsertionMode(), generalParseError
		}
	}
	return b.useRulesFor(t, inSelectInTable, inSelect)
}
