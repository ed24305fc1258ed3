package mustache

import "strings"

// reader is the single-pass, delimiter-parameterised tokenizer. It holds
// the source, the current delimiter pair, a cursor position, and the byte
// offset just past the standalone run the cursor currently sits inside
// (0 when the cursor isn't inside one).
type reader struct {
	src             string
	od, cd          string
	pos             int
	afterStandalone int
}

func newReader(src string) *reader {
	return &reader{src: src, od: "{{", cd: "}}"}
}

func (r *reader) setDelimiters(od, cd string) {
	r.od, r.cd = od, cd
	if n := spanStandalone(r.src[r.pos:], od, cd); n > 0 {
		r.afterStandalone = r.pos + n
	} else {
		r.afterStandalone = 0
	}
}

// lineStart returns the offset of the first byte of the line containing
// pos (the byte right after the preceding newline, or 0).
func lineStart(src string, pos int) int {
	if i := strings.LastIndexByte(src[:pos], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// popFront returns the next token, or (token{}, false) at EOF.
func (r *reader) popFront() (token, bool) {
	if r.pos >= len(r.src) {
		return token{}, false
	}
	// At the start of a line (the template's first line, or the line after
	// a standalone run) no preceding text token has checked whether this
	// line is standalone; check it here and skip its leading whitespace.
	if r.pos == 0 || r.src[r.pos-1] == '\n' {
		r.afterStandalone = 0
		if n := spanStandalone(r.src[r.pos:], r.od, r.cd); n > 0 {
			r.afterStandalone = r.pos + n
			r.pos += strings.Index(r.src[r.pos:], r.od)
		}
	}
	if strings.HasPrefix(r.src[r.pos:], r.od) {
		return r.readTag(), true
	}
	return r.readText(), true
}

func (r *reader) readText() token {
	text, afterText, afterStandalone := spanText(r.src[r.pos:], r.od, r.cd)
	startsNewLine := r.pos == lineStart(r.src, r.pos)
	if afterStandalone > 0 {
		r.afterStandalone = r.pos + afterStandalone
	} else {
		r.afterStandalone = 0
	}
	r.pos += afterText
	return textToken(text, startsNewLine)
}

func (r *reader) readTag() token {
	tagStart := r.pos
	ls := lineStart(r.src, tagStart)
	startsNewLine := tagStart == ls
	indent := ""
	if isIndent(r.src[ls:tagStart]) {
		indent = r.src[ls:tagStart]
	}

	tag, after, ok := spanTag(r.src[tagStart:], r.od, r.cd)
	if !ok {
		r.pos = len(r.src)
		return errorToken("missing close delimiter")
	}
	absAfter := tagStart + after

	tok, classifyErr := classifyTag(tag, startsNewLine, indent)
	if classifyErr != nil {
		r.pos = len(r.src)
		return *classifyErr
	}

	// A closing tag's body ends right before the tag, or, when the tag opens
	// a standalone line (only indentation before it), at the start of that
	// line, so the indentation it owns is not part of the body.
	if tok.kind == tokEndSection {
		tok.bodyEnd = tagStart
		if r.afterStandalone > 0 && isIndent(r.src[ls:tagStart]) {
			tok.bodyEnd = ls
		}
	}

	if r.afterStandalone > 0 {
		tail := r.src[absAfter:r.afterStandalone]
		if idx := strings.Index(tail, r.od); idx >= 0 {
			r.pos = absAfter + idx
		} else {
			r.pos = r.afterStandalone
			r.afterStandalone = 0
		}
	} else {
		r.pos = absAfter
	}

	// A section's body starts wherever the cursor now stands: if this
	// opener was the sole or final tag on a standalone line, that is past
	// the line's trailing newline; otherwise it is right after the tag, or
	// at the next sibling tag sharing its standalone line.
	if tok.kind == tokSection {
		tok.bodyStart = r.pos
	}

	return tok
}

// classifyTag maps a trimmed tag interior to a token. startsNewLine is
// threaded through for Value tokens, indent for Partial and Parent tokens.
func classifyTag(tag string, startsNewLine bool, indent string) (token, *token) {
	if len(tag) == 0 {
		errTok := errorToken("empty tag")
		return token{}, &errTok
	}
	switch tag[0] {
	case '#':
		rest := strings.TrimSpace(tag[1:])
		isSeqCheck := strings.HasPrefix(rest, "?")
		if isSeqCheck {
			rest = strings.TrimSpace(rest[1:])
		}
		if rest == "" {
			errTok := errorToken("missing name")
			return token{}, &errTok
		}
		return sectionToken(rest, 0, isSeqCheck), nil
	case '^':
		name := strings.TrimSpace(tag[1:])
		if name == "" {
			errTok := errorToken("missing name")
			return token{}, &errTok
		}
		return invertedSectionToken(name), nil
	case '$':
		name := strings.TrimSpace(tag[1:])
		if name == "" {
			errTok := errorToken("missing name")
			return token{}, &errTok
		}
		return blockToken(name), nil
	case '/':
		rest := strings.TrimSpace(tag[1:])
		qualifier := ""
		switch {
		case strings.HasPrefix(rest, "?"):
			qualifier = "?"
			rest = strings.TrimSpace(rest[1:])
		case strings.HasPrefix(rest, "*"):
			qualifier = "*"
			rest = strings.TrimSpace(rest[1:])
		}
		if rest == "" {
			errTok := errorToken("missing name")
			return token{}, &errTok
		}
		return endSectionToken(rest, qualifier, 0), nil
	case '>':
		return classifyPartialLike(tag[1:], indent, false)
	case '<':
		return classifyPartialLike(tag[1:], indent, true)
	case '=':
		if len(tag) < 2 || tag[len(tag)-1] != '=' {
			errTok := errorToken("invalid delimiters tag")
			return token{}, &errTok
		}
		inner := strings.TrimSpace(tag[1 : len(tag)-1])
		words := strings.Fields(inner)
		if len(words) != 2 || strings.Contains(words[0], "=") || strings.Contains(words[1], "=") {
			errTok := errorToken("invalid delimiters tag")
			return token{}, &errTok
		}
		return delimitersToken(words[0], words[1]), nil
	case '!':
		return commentToken(strings.TrimSpace(tag[1:])), nil
	case '{':
		if tag[len(tag)-1] != '}' {
			errTok := errorToken("unclosed triple mustache")
			return token{}, &errTok
		}
		name := strings.TrimSpace(tag[1 : len(tag)-1])
		if name == "" {
			errTok := errorToken("missing name")
			return token{}, &errTok
		}
		return valueToken(name, false, startsNewLine), nil
	case '&':
		name := strings.TrimSpace(tag[1:])
		if name == "" {
			errTok := errorToken("missing name")
			return token{}, &errTok
		}
		return valueToken(name, false, startsNewLine), nil
	default:
		return valueToken(tag, true, startsNewLine), nil
	}
}

func classifyPartialLike(rest, indent string, isParent bool) (token, *token) {
	rest = strings.TrimSpace(rest)
	isDynamic := strings.HasPrefix(rest, "*")
	if isDynamic {
		rest = strings.TrimSpace(rest[1:])
	}
	if rest == "" {
		errTok := errorToken("missing name")
		return token{}, &errTok
	}
	if isParent {
		return parentToken(rest, isDynamic, indent), nil
	}
	return partialToken(rest, isDynamic, indent), nil
}
