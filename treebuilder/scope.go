package treebuilder

// Scope queries walk the stack of open elements from the current node
// downward, looking for a tag but stopping at a scope-limiting element. The
// general, table, and select definitions use different limiter sets on
// purpose; the same tag can be in one scope and not another.

func (b *TreeBuilder[N]) hasInSpecificScope(tag string, limits tagSet) bool {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		entry := b.openElements[i]
		if entry.name == tag {
			return true
		}
		if limits.contains(entry.a) {
			return false
		}
	}
	return false
}

func (b *TreeBuilder[N]) hasElementInScope(tag string) bool {
	return b.hasInSpecificScope(tag, defaultScopeLimits)
}

func (b *TreeBuilder[N]) hasElementInListItemScope(tag string) bool {
	return b.hasInSpecificScope(tag, listItemScopeLimits)
}

func (b *TreeBuilder[N]) hasElementInButtonScope(tag string) bool {
	return b.hasInSpecificScope(tag, buttonScopeLimits)
}

func (b *TreeBuilder[N]) hasElementInTableScope(tag string) bool {
	return b.hasInSpecificScope(tag, tableScopeLimits)
}

// hasElementInSelectScope is the inverted variant: everything except
// optgroup and option terminates the scan.
func (b *TreeBuilder[N]) hasElementInSelectScope(tag string) bool {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		entry := b.openElements[i]
		if entry.name == tag {
			return true
		}
		if !selectScopePassthrough.contains(entry.a) {
			return false
		}
	}
	return false
}

func (b *TreeBuilder[N]) hasHeadingInScope() bool {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		entry := b.openElements[i]
		if headingElements.contains(entry.a) {
			return true
		}
		if defaultScopeLimits.contains(entry.a) {
			return false
		}
	}
	return false
}
