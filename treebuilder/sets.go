package treebuilder

import "golang.org/x/net/html/atom"

// The fixed tag vocabularies below drive the hot paths of the dispatcher.
// Tag names are interned to atoms once per token so membership tests are
// integer map lookups rather than string comparisons; a tag unknown to the
// atom table can never be a member of any of these sets.

type tagSet map[atom.Atom]bool

func newTagSet(atoms ...atom.Atom) tagSet {
	s := make(tagSet, len(atoms))
	for _, a := range atoms {
		s[a] = true
	}
	return s
}

func (s tagSet) contains(a atom.Atom) bool {
	return a != 0 && s[a]
}

func tagAtom(name string) atom.Atom {
	return atom.Lookup([]byte(name))
}

// Void elements are never pushed onto the stack of open elements and never
// produce an end event.
var voidElements = newTagSet(
	atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Frame, atom.Hr,
	atom.Img, atom.Input, atom.Link, atom.Meta, atom.Param, atom.Source,
	atom.Track, atom.Wbr,
)

// Elements whose start tag implicitly closes an open p element.
var pClosingElements = newTagSet(
	atom.Address, atom.Article, atom.Aside, atom.Blockquote, atom.Center,
	atom.Details, atom.Dialog, atom.Dir, atom.Div, atom.Dl, atom.Fieldset,
	atom.Figcaption, atom.Figure, atom.Footer, atom.Form, atom.H1, atom.H2,
	atom.H3, atom.H4, atom.H5, atom.H6, atom.Header, atom.Hgroup, atom.Hr,
	atom.Main, atom.Menu, atom.Nav, atom.Ol, atom.P, atom.Pre, atom.Section,
	atom.Summary, atom.Table, atom.Ul,
)

// Inline formatting elements tracked on the list of active formatting
// elements and repaired by the adoption agency.
var formattingElements = newTagSet(
	atom.A, atom.B, atom.Big, atom.Code, atom.Em, atom.Font, atom.I,
	atom.Nobr, atom.S, atom.Small, atom.Strike, atom.Strong, atom.Tt, atom.U,
)

var headingElements = newTagSet(atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6)

// Special elements terminate the furthest-block search of the adoption
// agency and stop the generic end-tag stack scan.
var specialElements = newTagSet(
	atom.Address, atom.Applet, atom.Area, atom.Article, atom.Aside, atom.Base,
	atom.Basefont, atom.Bgsound, atom.Blockquote, atom.Body, atom.Br,
	atom.Button, atom.Caption, atom.Center, atom.Col, atom.Colgroup, atom.Dd,
	atom.Details, atom.Dir, atom.Div, atom.Dl, atom.Dt, atom.Embed,
	atom.Fieldset, atom.Figcaption, atom.Figure, atom.Footer, atom.Form,
	atom.Frame, atom.Frameset, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5,
	atom.H6, atom.Head, atom.Header, atom.Hgroup, atom.Hr, atom.Html,
	atom.Iframe, atom.Img, atom.Input, atom.Keygen, atom.Li, atom.Link,
	atom.Listing, atom.Main, atom.Marquee, atom.Menu, atom.Meta, atom.Nav,
	atom.Noembed, atom.Noframes, atom.Noscript, atom.Object, atom.Ol, atom.P,
	atom.Param, atom.Plaintext, atom.Pre, atom.Script, atom.Section,
	atom.Select, atom.Source, atom.Style, atom.Summary, atom.Table,
	atom.Tbody, atom.Td, atom.Template, atom.Textarea, atom.Tfoot, atom.Th,
	atom.Thead, atom.Tr, atom.Track, atom.Ul, atom.Wbr,
)

// Elements closed by "generate implied end tags".
var impliedEndElements = newTagSet(
	atom.Dd, atom.Dt, atom.Li, atom.Optgroup, atom.Option, atom.P, atom.Rb,
	atom.Rp, atom.Rt, atom.Rtc,
)

// Scope limiter sets. The three independent definitions (general, table,
// select) intentionally give different answers for the same tag; the select
// variant is inverted and lives in scope.go.
var (
	defaultScopeLimits = newTagSet(
		atom.Applet, atom.Caption, atom.Html, atom.Table, atom.Td, atom.Th,
		atom.Marquee, atom.Object, atom.Template,
	)
	listItemScopeLimits = newTagSet(
		atom.Applet, atom.Caption, atom.Html, atom.Table, atom.Td, atom.Th,
		atom.Marquee, atom.Object, atom.Template, atom.Ol, atom.Ul,
	)
	buttonScopeLimits = newTagSet(
		atom.Applet, atom.Caption, atom.Html, atom.Table, atom.Td, atom.Th,
		atom.Marquee, atom.Object, atom.Template, atom.Button,
	)
	tableScopeLimits = newTagSet(atom.Html, atom.Table, atom.Template)

	selectScopePassthrough = newTagSet(atom.Optgroup, atom.Option)
)
