package treebuilder

import "golang.org/x/net/html/atom"

// Handlers for the document prologue: initial through afterHead, plus the
// shared text diversion mode. Each handler returns whether the current token
// must be reprocessed, the next insertion mode, and any parse error to log.

func (b *TreeBuilder[N]) initialModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		if t.isWhitespace() {
			return false, initial, noError
		}
	case CommentToken:
		b.sink.Comment(t.Data)
		return false, initial, noError
	case DocTypeToken:
		err := noError
		if t.TagName != "html" || t.PublicIdentifier != Missing ||
			(t.SystemIdentifier != Missing && t.SystemIdentifier != "about:legacy-compat") {
			err = generalParseError
		}
		b.quirks = classifyDoctype(t)
		b.sink.Doctype(t.TagName, t.PublicIdentifier, t.SystemIdentifier)
		return false, beforeHTML, err
	}

	// Content before any doctype: a quirks document.
	b.quirks = Quirks
	return true, beforeHTML, generalParseError
}

func (b *TreeBuilder[N]) defaultBeforeHTMLModeHandler(t *Token) (bool, insertionMode, parseError) {
	b.insertImplied("html")
	return true, beforeHead, noError
}

func (b *TreeBuilder[N]) beforeHTMLModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case DocTypeToken:
		return false, beforeHTML, generalParseError
	case CommentToken:
		b.sink.Comment(t.Data)
		return false, beforeHTML, noError
	case CharacterToken:
		if t.isWhitespace() {
			return false, beforeHTML, noError
		}
	case StartTagToken:
		if t.TagName == "html" {
			b.insertElement(t)
			return false, beforeHead, noError
		}
	case EndTagToken:
		switch t.TagName {
		case "head", "body", "html", "br":
			return b.defaultBeforeHTMLModeHandler(t)
		}
		return false, beforeHTML, generalParseError
	}
	return b.defaultBeforeHTMLModeHandler(t)
}

func (b *TreeBuilder[N]) defaultBeforeHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	b.insertImplied("head")
	b.headSeen = true
	return true, inHead, noError
}

func (b *TreeBuilder[N]) beforeHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		if t.isWhitespace() {
			return false, beforeHead, noError
		}
	case CommentToken:
		b.sink.Comment(t.Data)
		return false, beforeHead, noError
	case DocTypeToken:
		return false, beforeHead, generalParseError
	case StartTagToken:
		switch t.TagName {
		case "html":
			return b.useRulesFor(t, beforeHead, inBody)
		case "head":
			b.insertElement(t)
			b.headSeen = true
			return false, inHead, noError
		}
	case EndTagToken:
		switch t.TagName {
		case "head", "body", "html", "br":
			return b.defaultBeforeHeadModeHandler(t)
		}
		return false, beforeHead, generalParseError
	}
	return b.defaultBeforeHeadModeHandler(t)
}

func (b *TreeBuilder[N]) defaultInHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	b.flushText()
	b.popCurrent()
	return true, afterHead, noError
}

func (b *TreeBuilder[N]) inHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		// All characters accumulate here, not only whitespace; a start tag
		// is what forces the head closed.
		b.textBuffer.WriteString(t.Data)
		return false, inHead, noError
	case CommentToken:
		b.sink.Comment(t.Data)
		return false, inHead, noError
	case DocTypeToken:
		return false, inHead, generalParseError
	case StartTagToken:
		switch tagAtom(t.TagName) {
		case atom.Html:
			return b.useRulesFor(t, inHead, inBody)
		case atom.Base, atom.Basefont, atom.Bgsound, atom.Link, atom.Meta:
			b.insertElement(t)
			return false, inHead, noError
		case atom.Title, atom.Style, atom.Script, atom.Noframes:
			b.insertElement(t)
			// b.mode, not inHead: this branch is also reached by delegation
			// from other modes, and the text mode must restore the
			// delegating mode.
			b.originalMode = b.mode
			return false, text, noError
		case atom.Noscript:
			b.insertElement(t)
			if b.scriptingEnabled {
				b.originalMode = b.mode
				return false, text, noError
			}
			return false, inHeadNoscript, noError
		case atom.Template:
			b.insertElement(t)
			b.pushFormattingMarker()
			b.framesetOK = false
			b.templateModes = append(b.templateModes, inTemplate)
			return false, inTemplate, noError
		case atom.Head:
			return false, inHead, generalParseError
		}
	case EndTagToken:
		switch tagAtom(t.TagName) {
		case atom.Head:
			b.popCurrent()
			return false, afterHead, noError
		case atom.Body, atom.Html, atom.Br:
			return b.defaultInHeadModeHandler(t)
		case atom.Template:
			err := b.closeTemplateElement()
			if err != noError {
				return false, inHead, err
			}
			return false, b.resetInsertionMode(), noError
		default:
			return false, inHead, generalParseError
		}
	}
	return b.defaultInHeadModeHandler(t)
}

// closeTemplateElement handles </template> wherever it is delegated from.
func (b *TreeBuilder[N]) closeTemplateElement() parseError {
	if !b.stackHasTemplate() {
		return generalParseError
	}
	b.generateImpliedEndTags("")
	b.popThrough("template")
	b.clearFormattingToMarker()
	if n := len(b.templateModes); n > 0 {
		b.templateModes = b.templateModes[:n-1]
	}
	return noError
}

func (b *TreeBuilder[N]) defaultInHeadNoscriptModeHandler(t *Token) (bool, insertionMode, parseError) {
	b.popCurrent()
	return true, inHead, generalParseError
}

func (b *TreeBuilder[N]) inHeadNoscriptModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		if t.isWhitespace() {
			return b.useRulesFor(t, inHeadNoscript, inHead)
		}
	case CommentToken:
		return b.useRulesFor(t, inHeadNoscript, inHead)
	case DocTypeToken:
		return false, inHeadNoscript, generalParseError
	case StartTagToken:
		switch tagAtom(t.TagName) {
		case atom.Html:
			return b.useRulesFor(t, inHeadNoscript, inBody)
		case atom.Basefont, atom.Bgsound, atom.Link, atom.Meta, atom.Noframes, atom.Style:
			return b.useRulesFor(t, inHeadNoscript, inHead)
		case atom.Head, atom.Noscript:
			return false, inHeadNoscript, generalParseError
		}
	case EndTagToken:
		switch tagAtom(t.TagName) {
		case atom.Noscript:
			b.popCurrent()
			return false, inHead, noError
		case atom.Br:
			return b.defaultInHeadNoscriptModeHandler(t)
		default:
			return false, inHeadNoscript, generalParseError
		}
	}
	return b.defaultInHeadNoscriptModeHandler(t)
}

func (b *TreeBuilder[N]) defaultAfterHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	b.insertImplied("body")
	return true, inBody, noError
}

func (b *TreeBuilder[N]) afterHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		if t.isWhitespace() {
			b.textBuffer.WriteString(t.Data)
			return false, afterHead, noError
		}
	case CommentToken:
		b.sink.Comment(t.Data)
		return false, afterHead, noError
	case DocTypeToken:
		return false, afterHead, generalParseError
	case StartTagToken:
		switch tagAtom(t.TagName) {
		case atom.Html:
			return b.useRulesFor(t, afterHead, inBody)
		case atom.Body:
			b.insertElement(t)
			b.framesetOK = false
			return false, inBody, noError
		case atom.Frameset:
			b.insertElement(t)
			return false, inFrameset, noError
		case atom.Base, atom.Basefont, atom.Bgsound, atom.Link, atom.Meta,
			atom.Noframes, atom.Script, atom.Style, atom.Template, atom.Title:
			// Late head content; handled with the head rules.
			reprocess, next, _ := b.useRulesFor(t, afterHead, inHead)
			return reprocess, next, generalParseError
		case atom.Head:
			return false, afterHead, generalParseError
		}
	case EndTagToken:
		switch tagAtom(t.TagName) {
		case atom.Template:
			return b.useRulesFor(t, afterHead, inHead)
		case atom.Body, atom.Html, atom.Br:
			return b.defaultAfterHeadModeHandler(t)
		default:
			return false, afterHead, generalParseError
		}
	}
	return b.defaultAfterHeadModeHandler(t)
}

// textModeHandler accumulates raw character data for title/style/script and
// friends, then restores the saved mode on the matching end tag.
func (b *TreeBuilder[N]) textModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		b.textBuffer.WriteString(t.Data)
		return false, text, noError
	case EndOfFileToken:
		b.popCurrent()
		return true, b.originalMode, generalParseError
	case EndTagToken:
		b.popCurrent()
		return false, b.originalMode, noError
	}
	return false, text, noError
}
