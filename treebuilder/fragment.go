package treebuilder

import "golang.org/x/net/html/atom"

// FragmentContext names the element an input fragment is being parsed inside
// of, as for innerHTML. Only an HTML-namespace context participates in the
// mode lookup; a foreign context element parses its children as ordinary
// content.
type FragmentContext struct {
	ContextElement string
	HTMLNamespace  bool
}

// fragmentMode maps a fragment context element straight to the starting
// insertion mode. Contexts outside the table and select families all start
// in body.
func fragmentMode(context string) insertionMode {
	switch tagAtom(context) {
	case atom.Select:
		return inSelect
	case atom.Table:
		return inTable
	case atom.Td, atom.Th:
		return inCell
	case atom.Tbody, atom.Thead, atom.Tfoot:
		return inTableBody
	case atom.Tr:
		return inRow
	case atom.Caption:
		return inCaption
	case atom.Colgroup:
		return inColumnGroup
	case atom.Template:
		return inTemplate
	case atom.Head:
		return inHead
	case atom.Frameset:
		return inFrameset
	case atom.Html:
		return beforeHead
	}
	return inBody
}

// BuildFragment parses a fragment token stream as the children of the given
// context element. A synthetic html root is created so the construction rules
// always have a current node; its events bracket the fragment's.
func (b *TreeBuilder[N]) BuildFragment(tokens []*Token, ctx FragmentContext) error {
	b.context = &ctx
	root := b.sink.StartElement("html", nil, false)
	b.push("html", root)
	b.mode = inBody
	if ctx.HTMLNamespace {
		switch tagAtom(ctx.ContextElement) {
		case atom.Template:
			b.templateModes = append(b.templateModes, inTemplate)
		case atom.Form:
			// Parsing inside a form: the pointer is occupied, so nested
			// form start tags are ignored.
			b.formElement = &root
		}
		b.mode = fragmentMode(ctx.ContextElement)
	}
	return b.Build(tokens)
}

// BuildTreeFragment parses a fragment token stream into sink in the given
// context.
func BuildTreeFragment[N comparable](tokens []*Token, sink TreeSink[N], ctx FragmentContext) error {
	return New(sink).BuildFragment(tokens, ctx)
}
