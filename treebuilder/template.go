package treebuilder

import "golang.org/x/net/html/atom"

// switchTemplateMode replaces the current template insertion mode and
// reprocesses the token under it.
func (b *TreeBuilder[N]) switchTemplateMode(m insertionMode) (bool, insertionMode, parseError) {
	if len(b.templateModes) > 0 {
		b.templateModes = b.templateModes[:len(b.templateModes)-1]
	}
	b.templateModes = append(b.templateModes, m)
	return true, m, noError
}

func (b *TreeBuilder[N]) inTemplateModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken, CommentToken, DocTypeToken:
		return b.useRulesFor(t, inTemplate, inBody)
	case StartTagToken:
		switch tagAtom(t.TagName) {
		case atom.Base, atom.Basefont, atom.Bgsound, atom.Link, atom.Meta,
			atom.Noframes, atom.Script, atom.Style, atom.Template, atom.Title:
			return b.useRulesFor(t, inTemplate, inHead)
		case atom.Caption, atom.Colgroup, atom.Tbody, atom.Tfoot, atom.Thead:
			return b.switchTemplateMode(inTable)
		case atom.Col:
			return b.switchTemplateMode(inColumnGroup)
		case atom.Tr:
			return b.switchTemplateMode(inTableBody)
		case atom.Td, atom.Th:
			return b.switchTemplateMode(inRow)
		default:
			return b.switchTemplateMode(inBody)
		}
	case EndTagToken:
		if tagAtom(t.TagName) == atom.Template {
			return b.useRulesFor(t, inTemplate, inHead)
		}
		return false, inTemplate, generalParseError
	case EndOfFileToken:
		if !b.stackHasTemplate() {
			// Nothing left to unwind; stop parsing.
			b.popAll()
			return false, inTemplate, noError
		}
		// Unwind every open template here rather than reprocessing the
		// token once per template: arbitrarily deep nesting must not eat
		// into the reprocess budget.
		for b.stackHasTemplate() {
			b.closeTemplateElement()
		}
		b.templateModes = b.templateModes[:0]
		b.popAll()
		return false, inTemplate, generalParseError
	}
	return false, inTemplate, noError
}
