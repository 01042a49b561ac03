package treebuilder

import "golang.org/x/net/html/atom"

// resetInsertionMode walks the stack of open elements from the top and picks
// the mode appropriate for the nearest element it recognizes. Used after
// closing a table or template, and whenever a misnested construct leaves the
// current mode stale.
func (b *TreeBuilder[N]) resetInsertionMode() insertionMode {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		node := b.openElements[i]
		last := i == 0
		if last && b.context != nil {
			node = openElement[N]{name: b.context.ContextElement, a: tagAtom(b.context.ContextElement)}
		}
		switch node.a {
		case atom.Select:
			if !last {
				for j := i - 1; j > 0; j-- {
					switch b.openElements[j].a {
					case atom.Template:
						return inSelect
					case atom.Table:
						return inSelectInTable
					}
				}
			}
			return inSelect
		case atom.Td, atom.Th:
			if !last {
				return inCell
			}
		case atom.Tr:
			return inRow
		case atom.Tbody, atom.Thead, atom.Tfoot:
			return inTableBody
		case atom.Caption:
			return inCaption
		case atom.Colgroup:
			return inColumnGroup
		case atom.Table:
			return inTable
		case atom.Template:
			return b.currentTemplateMode()
		case atom.Head:
			if !last {
				return inHead
			}
		case atom.Body:
			return inBody
		case atom.Frameset:
			return inFrameset
		case atom.Html:
			if !b.headSeen {
				return beforeHead
			}
			return afterHead
		}
		if last {
			return inBody
		}
	}
	return inBody
}

func (b *TreeBuilder[N]) currentTemplateMode() insertionMode {
	if len(b.templateModes) == 0 {
		return inBody
	}
	return b.templateModes[len(b.templateModes)-1]
}
