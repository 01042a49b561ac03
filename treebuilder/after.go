package treebuilder

import "golang.org/x/net/html/atom"

func (b *TreeBuilder[N]) afterBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		if t.isWhitespace() {
			return b.useRulesFor(t, afterBody, inBody)
		}
	case CommentToken:
		b.sink.Comment(t.Data)
		return false, afterBody, noError
	case DocTypeToken:
		return false, afterBody, generalParseError
	case StartTagToken:
		if tagAtom(t.TagName) == atom.Html {
			return b.useRulesFor(t, afterBody, inBody)
		}
	case EndTagToken:
		if tagAtom(t.TagName) == atom.Html {
			if b.context != nil {
				return false, afterBody, generalParseError
			}
			return false, afterAfterBody, noError
		}
	case EndOfFileToken:
		b.popAll()
		return false, afterBody, noError
	}
	return true, inBody, generalParseError
}

func (b *TreeBuilder[N]) inFramesetModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		if t.isWhitespace() {
			b.textBuffer.WriteString(t.Data)
			return false, inFrameset, noError
		}
	case CommentToken:
		b.sink.Comment(t.Data)
		return false, inFrameset, noError
	case DocTypeToken:
		return false, inFrameset, generalParseError
	case StartTagToken:
		switch tagAtom(t.TagName) {
		case atom.Html:
			return b.useRulesFor(t, inFrameset, inBody)
		case atom.Frameset:
			b.insertElement(t)
			return false, inFrameset, noError
		case atom.Frame:
			b.insertElement(t)
			return false, inFrameset, noError
		case atom.Noframes:
			return b.useRulesFor(t, inFrameset, inHead)
		}
	case EndTagToken:
		if tagAtom(t.TagName) == atom.Frameset {
			if b.currentAtom() == atom.Html {
				return false, inFrameset, generalParseError
			}
			b.popCurrent()
			if b.context == nil && b.currentAtom() != atom.Frameset {
				return false, afterFrameset, noError
			}
			return false, inFrameset, noError
		}
	case EndOfFileToken:
		if b.currentAtom() != atom.Html {
			// Truncated frameset document.
			b.popAll()
			return false, inFrameset, generalParseError
		}
		b.popAll()
		return false, inFrameset, noError
	}
	return false, inFrameset, generalParseError
}

func (b *TreeBuilder[N]) afterFramesetModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CharacterToken:
		if t.isWhitespace() {
			b.textBuffer.WriteString(t.Data)
			return false, afterFrameset, noError
		}
	case CommentToken:
		b.sink.Comment(t.Data)
		return false, afterFrameset, noError
	case DocTypeToken:
		return false, afterFrameset, generalParseError
	case StartTagToken:
		switch tagAtom(t.TagName) {
		case atom.Html:
			return b.useRulesFor(t, afterFrameset, inBody)
		case atom.Noframes:
			return b.useRulesFor(t, afterFrameset, inHead)
		}
	case EndTagToken:
		if tagAtom(t.TagName) == atom.Html {
			return false, afterAfterFrameset, noError
		}
	case EndOfFileToken:
		b.popAll()
		return false, afterFrameset, noError
	}
	return false, afterFrameset, generalParseError
}

func (b *TreeBuilder[N]) afterAfterBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CommentToken:
		b.sink.Comment(t.Data)
		return false, afterAfterBody, noError
	case DocTypeToken:
		return b.useRulesFor(t, afterAfterBody, inBody)
	case CharacterToken:
		if t.isWhitespace() {
			return b.useRulesFor(t, afterAfterBody, inBody)
		}
	case StartTagToken:
		if tagAtom(t.TagName) == atom.Html {
			return b.useRulesFor(t, afterAfterBody, inBody)
		}
	case EndOfFileToken:
		b.popAll()
		return false, afterAfterBody, noError
	}
	return true, inBody, generalParseError
}

func (b *TreeBuilder[N]) afterAfterFramesetModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case CommentToken:
		b.sink.Comment(t.Data)
		return false, afterAfterFrameset, noError
	case DocTypeToken:
		return b.useRulesFor(t, afterAfterFrameset, inBody)
	case CharacterToken:
		if t.isWhitespace() {
			return b.useRulesFor(t, afterAfterFrameset, inBody)
		}
	case StartTagToken:
		switch tagAtom(t.TagName) {
		case atom.Html:
			return b.useRulesFor(t, afterAfterFrameset, inBody)
		case atom.Noframes:
			return b.useRulesFor(t, afterAfterFrameset, inHead)
		}
	case EndOfFileToken:
		b.popAll()
		return false, afterAfterFrameset, noError
	}
	return false, afterAfterFrameset, generalParseError
}
