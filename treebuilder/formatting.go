package treebuilder

// formattingEntry is an element on the list of active formatting elements,
// or a marker delimiting a table/button insertion boundary.
type formattingEntry[N comparable] struct {
	marker bool
	name   string
	attrs  map[string]string
	id     N
}

func (b *TreeBuilder[N]) pushFormattingMarker() {
	b.activeFormatting = append(b.activeFormatting, formattingEntry[N]{marker: true})
}

// clearFormattingToMarker drops entries up to and including the last marker,
// used when a caption, cell, or similar boundary closes.
func (b *TreeBuilder[N]) clearFormattingToMarker() {
	for i := len(b.activeFormatting) - 1; i >= 0; i-- {
		if b.activeFormatting[i].marker {
			b.activeFormatting = b.activeFormatting[:i]
			return
		}
	}
	b.activeFormatting = b.activeFormatting[:0]
}

func sameFormatting[N comparable](a, c formattingEntry[N]) bool {
	if a.name != c.name || len(a.attrs) != len(c.attrs) {
		return false
	}
	for k, v := range a.attrs {
		if cv, ok := c.attrs[k]; !ok || cv != v {
			return false
		}
	}
	return true
}

// pushFormattingElement appends an entry, enforcing the Noah's Ark clause:
// between two markers at most three entries may share an identical
// (name, attrs); the earliest excess entry is evicted.
func (b *TreeBuilder[N]) pushFormattingElement(t *Token, id N) {
	entry := formattingEntry[N]{name: t.TagName, attrs: t.Attributes, id: id}

	matches := 0
	earliest := -1
	for i := len(b.activeFormatting) - 1; i >= 0; i-- {
		if b.activeFormatting[i].marker {
			break
		}
		if sameFormatting(b.activeFormatting[i], entry) {
			matches++
			earliest = i
		}
	}
	if matches >= 3 {
		b.removeFormattingAt(earliest)
	}

	b.activeFormatting = append(b.activeFormatting, entry)
}

func (b *TreeBuilder[N]) removeFormattingAt(i int) {
	b.activeFormatting = append(b.activeFormatting[:i], b.activeFormatting[i+1:]...)
}

// findFormatting locates the most recent entry for tag, scanning backward
// and stopping at a marker.
func (b *TreeBuilder[N]) findFormatting(tag string) int {
	for i := len(b.activeFormatting) - 1; i >= 0; i-- {
		if b.activeFormatting[i].marker {
			return -1
		}
		if b.activeFormatting[i].name == tag {
			return i
		}
	}
	return -1
}

func (b *TreeBuilder[N]) formattingIndexOf(id N) int {
	for i := len(b.activeFormatting) - 1; i >= 0; i-- {
		if !b.activeFormatting[i].marker && b.activeFormatting[i].id == id {
			return i
		}
	}
	return -1
}

// reconstructActiveFormattingElements re-opens the trailing run of entries
// that are no longer on the stack of open elements, so formatting started
// before a block boundary keeps applying after it.
func (b *TreeBuilder[N]) reconstructActiveFormattingElements() {
	n := len(b.activeFormatting)
	if n == 0 {
		return
	}
	last := b.activeFormatting[n-1]
	if last.marker || b.stackIndexOf(last.id) != -1 {
		return
	}

	// Rewind to the first entry that is a marker or still open.
	i := n - 1
	for ; i >= 0; i-- {
		entry := b.activeFormatting[i]
		if entry.marker || b.stackIndexOf(entry.id) != -1 {
			break
		}
	}

	// Re-insert everything after it, replacing each entry with its clone.
	for i++; i < n; i++ {
		entry := b.activeFormatting[i]
		id := b.sink.StartElement(entry.name, entry.attrs, false)
		b.maybeFoster(id)
		b.push(entry.name, id)
		b.activeFormatting[i].id = id
	}
}

// adoptionAgency repairs a misnested formatting end tag. The bool result
// asks the caller to fall back to the ordinary end-tag handling.
//
// When a furthest block exists this takes a documented shortcut: instead of
// the full reparenting loop it closes every element from the top of the
// stack down to and including the formatting element. That recovers the
// common misnestings without reproducing the exact DOM shape for deeply
// nested cases.
func (b *TreeBuilder[N]) adoptionAgency(t *Token) (bool, parseError) {
	// Fast path: the current node matches and is not itself an active
	// formatting entry.
	if cur := b.currentNode(); cur != nil && cur.name == t.TagName && b.formattingIndexOf(cur.id) == -1 {
		b.popCurrent()
		return false, noError
	}

	fi := b.findFormatting(t.TagName)
	if fi == -1 {
		return true, noError
	}
	entry := b.activeFormatting[fi]

	si := b.stackIndexOf(entry.id)
	if si == -1 {
		// In the list but no longer open.
		b.removeFormattingAt(fi)
		return false, generalParseError
	}

	if !b.hasElementInScope(t.TagName) {
		return false, generalParseError
	}

	if cur := b.currentNode(); cur != nil && cur.id == entry.id {
		b.popCurrent()
		b.removeFormattingAt(fi)
		return false, noError
	}

	// Furthest block: the first special element above the formatting
	// element on the stack.
	furthest := -1
	for i := si + 1; i < len(b.openElements); i++ {
		if specialElements.contains(b.openElements[i].a) {
			furthest = i
			break
		}
	}

	for len(b.openElements) > si {
		b.popCurrent()
	}
	b.removeFormattingAt(fi)
	if furthest == -1 {
		return false, noError
	}
	return false, generalParseError
}
