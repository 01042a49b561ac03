package treebuilder

// TokenType identifies the kind of lexical token emitted by an upstream
// tokenizer.
type TokenType uint

const (
	CharacterToken TokenType = iota
	StartTagToken
	EndTagToken
	EndOfFileToken
	CommentToken
	DocTypeToken
)

// Missing marks a DOCTYPE public or system identifier that was absent from
// the input, as opposed to present but empty.
const Missing string = "MISSING"

// Token is a concrete token that is ready to be processed. Tokens are
// produced by an upstream tokenizer and consumed one at a time; the builder
// also synthesizes its own tokens when a rule says "act as if token X was
// seen".
type Token struct {
	TokenType        TokenType
	TagName          string
	Attributes       map[string]string
	PublicIdentifier string
	SystemIdentifier string
	ForceQuirks      bool
	SelfClosing      bool
	Data             string
}

// StartTag creates a start tag token.
func StartTag(name string, attrs map[string]string) *Token {
	return &Token{TokenType: StartTagToken, TagName: name, Attributes: attrs}
}

// EndTag creates an end tag token.
func EndTag(name string) *Token {
	return &Token{TokenType: EndTagToken, TagName: name}
}

// Character creates a character token holding a single rune.
func Character(r rune) *Token {
	return &Token{TokenType: CharacterToken, Data: string(r)}
}

// Comment creates a comment token.
func Comment(data string) *Token {
	return &Token{TokenType: CommentToken, Data: data}
}

// DocType creates a doctype token. Absent identifiers should be passed as
// Missing.
func DocType(name, publicID, systemID string) *Token {
	return &Token{
		TokenType:        DocTypeToken,
		TagName:          name,
		PublicIdentifier: publicID,
		SystemIdentifier: systemID,
	}
}

// EndOfFile creates an end of file token.
func EndOfFile() *Token {
	return &Token{TokenType: EndOfFileToken}
}

// isWhitespace reports whether a character token consists entirely of ASCII
// whitespace.
func (t *Token) isWhitespace() bool {
	if t.TokenType != CharacterToken || t.Data == "" {
		return false
	}
	for i := 0; i < len(t.Data); i++ {
		switch t.Data[i] {
		case '\t', '\n', '\f', '\r', ' ':
		default:
			return false
		}
	}
	return true
}

func (t *Token) String() string {
	switch t.TokenType {
	case CharacterToken:
		return "char(" + t.Data + ")"
	case StartTagToken:
		return "<" + t.TagName + ">"
	case EndTagToken:
		return "</" + t.TagName + ">"
	case CommentToken:
		return "<!--" + t.Data + "-->"
	case DocTypeToken:
		return "<!DOCTYPE " + t.TagName + ">"
	case EndOfFileToken:
		return "EOF"
	}
	return "unknown"
}
