package treebuilder

import "strings"

// rawTextTags are elements whose content the real tokenizer would emit as
// plain characters up to the matching end tag.
var rawTextTags = map[string]bool{
	"iframe": true, "noembed": true, "noframes": true, "script": true,
	"style": true, "textarea": true, "title": true, "xmp": true,
}

// tokenize is a deliberately small tokenizer for building test inputs from
// markup. It handles tags, attributes, comments, doctypes, and raw-text
// content; character data comes out one rune per token, the way the builder
// receives it in production.
func tokenize(input string) []*Token {
	var tokens []*Token
	chars := func(s string) {
		for _, r := range s {
			tokens = append(tokens, Character(r))
		}
	}
	i := 0
	for i < len(input) {
		if input[i] != '<' {
			j := strings.IndexByte(input[i:], '<')
			if j < 0 {
				chars(input[i:])
				break
			}
			chars(input[i : i+j])
			i += j
			continue
		}
		switch {
		case strings.HasPrefix(input[i:], "<!--"):
			end := strings.Index(input[i+4:], "-->")
			if end < 0 {
				tokens = append(tokens, Comment(input[i+4:]))
				i = len(input)
				continue
			}
			tokens = append(tokens, Comment(input[i+4:i+4+end]))
			i += 4 + end + 3
		case strings.HasPrefix(input[i:], "<!"):
			end := strings.IndexByte(input[i:], '>')
			if end < 0 {
				end = len(input) - i
			}
			tokens = append(tokens, parseDoctype(input[i+2:i+end]))
			i += end + 1
		case strings.HasPrefix(input[i:], "</"):
			end := strings.IndexByte(input[i:], '>')
			if end < 0 {
				end = len(input) - i
			}
			name := strings.ToLower(strings.TrimSpace(input[i+2 : i+end]))
			tokens = append(tokens, EndTag(name))
			i += end + 1
		default:
			end := strings.IndexByte(input[i:], '>')
			if end < 0 {
				end = len(input) - i
			}
			t := parseStartTag(input[i+1 : i+end])
			tokens = append(tokens, t)
			i += end + 1
			if t.TagName == "plaintext" {
				chars(input[i:])
				i = len(input)
				continue
			}
			if rawTextTags[t.TagName] && !t.SelfClosing {
				endTag := "</" + t.TagName
				at := strings.Index(strings.ToLower(input[i:]), endTag)
				if at < 0 {
					chars(input[i:])
					i = len(input)
					continue
				}
				chars(input[i : i+at])
				i += at
			}
		}
	}
	return tokens
}

func parseStartTag(raw string) *Token {
	selfClosing := strings.HasSuffix(raw, "/")
	raw = strings.TrimSuffix(raw, "/")
	fields := splitTag(raw)
	t := StartTag(strings.ToLower(fields[0]), nil)
	t.SelfClosing = selfClosing
	for _, f := range fields[1:] {
		name, value := f, ""
		if eq := strings.IndexByte(f, '='); eq >= 0 {
			name, value = f[:eq], strings.Trim(f[eq+1:], `"'`)
		}
		if t.Attributes == nil {
			t.Attributes = map[string]string{}
		}
		name = strings.ToLower(name)
		if _, dup := t.Attributes[name]; !dup {
			t.Attributes[name] = value
		}
	}
	return t
}

// splitTag splits a tag body on spaces, keeping quoted attribute values
// intact.
func splitTag(raw string) []string {
	var fields []string
	var cur strings.Builder
	var quote byte
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case quote != 0:
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
			cur.WriteByte(c)
		case c == ' ' || c == '\t' || c == '\n':
			if cur.Len() > 0 {
				fields = append(fields, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		fields = append(fields, cur.String())
	}
	if len(fields) == 0 {
		fields = []string{""}
	}
	return fields
}

func parseDoctype(raw string) *Token {
	raw = strings.TrimSpace(raw)
	if !strings.EqualFold(firstWord(raw), "doctype") {
		return DocType(strings.ToLower(raw), Missing, Missing)
	}
	rest := strings.TrimSpace(raw[len("doctype"):])
	name := firstWord(rest)
	rest = strings.TrimSpace(rest[len(name):])
	public, system := Missing, Missing
	if strings.HasPrefix(strings.ToUpper(rest), "PUBLIC") {
		rest = strings.TrimSpace(rest[len("PUBLIC"):])
		public, rest = quotedString(rest)
		if rest != "" {
			system, _ = quotedString(rest)
		}
	} else if strings.HasPrefix(strings.ToUpper(rest), "SYSTEM") {
		rest = strings.TrimSpace(rest[len("SYSTEM"):])
		system, _ = quotedString(rest)
	}
	return DocType(strings.ToLower(name), public, system)
}

func firstWord(s string) string {
	if i := strings.IndexAny(s, " \t\n"); i >= 0 {
		return s[:i]
	}
	return s
}

func quotedString(s string) (string, string) {
	if s == "" {
		return Missing, ""
	}
	q := s[0]
	if q != '"' && q != '\'' {
		return Missing, s
	}
	if end := strings.IndexByte(s[1:], q); end >= 0 {
		return s[1 : 1+end], strings.TrimSpace(s[2+end:])
	}
	return s[1:], ""
}
