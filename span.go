package mustache

import "strings"

// strippableSigils lists the tag sigils that make a tag eligible to be
// standalone. Interpolation ({{x}}, {{&x}}, {{{x}}}) is never standalone.
const strippableSigils = "#^/>=!$<"

func isIndentByte(b byte) bool {
	return b == ' ' || b == '\t'
}

// spanTag is given a slice starting at an open delimiter and returns the
// trimmed tag interior plus the offset just past the matching close
// delimiter. Triple-brace and delimiter-change tags require the close to
// be preceded by '}' or '=' respectively; any other first interior byte
// uses the plain close delimiter. ok is false if no close delimiter is
// found; an empty interior is returned as an empty tag with ok true.
func spanTag(s, od, cd string) (tag string, after int, ok bool) {
	if len(s) <= len(od) {
		return "", 0, false
	}
	var closeSeq string
	switch s[len(od)] {
	case '{':
		closeSeq = "}" + cd
	case '=':
		closeSeq = "=" + cd
	default:
		closeSeq = cd
	}
	idx := strings.Index(s[len(od):], closeSeq)
	if idx < 0 {
		return "", 0, false
	}
	idx += len(od)
	// For triple-mustache and delimiter-change tags, the close sequence's
	// leading byte ('}' or '=') is itself the tag's own closing sigil and
	// belongs to the tag content, not the delimiter.
	tagEnd := idx
	if len(closeSeq) > len(cd) {
		tagEnd++
	}
	tag = strings.TrimSpace(s[len(od):tagEnd])
	return tag, idx + len(closeSeq), true
}

// isStandaloneOpen reports whether s opens with a tag whose sigil is in
// the strippable set, i.e. it is eligible to participate in a standalone
// line.
func isStandaloneOpen(s, od string) bool {
	if !strings.HasPrefix(s, od) || len(s) <= len(od) {
		return false
	}
	rest := s[len(od):]
	if len(rest) == 0 {
		return false
	}
	return strings.IndexByte(strippableSigils, rest[0]) >= 0
}

// spanStandalone returns the byte offset, relative to s, just past a
// maximal prefix of s consisting of: leading horizontal whitespace, a run
// of one-or-more tags each beginning with a strippable sigil (with any
// intervening whitespace between tags also consumed), and a trailing
// newline (or EOF). It returns 0 if no such prefix exists starting at 0
// (i.e. s does not begin, after whitespace, with a strippable tag).
func spanStandalone(s, od, cd string) int {
	i := 0
	for i < len(s) && isIndentByte(s[i]) {
		i++
	}
	sawTag := false
	for i < len(s) && isStandaloneOpen(s[i:], od) {
		tag, after, ok := spanTag(s[i:], od, cd)
		if !ok || len(tag) == 0 {
			return 0
		}
		sawTag = true
		i += after
		for i < len(s) && isIndentByte(s[i]) {
			i++
		}
	}
	if !sawTag {
		return 0
	}
	if i == len(s) {
		return i
	}
	if s[i] == '\n' {
		return i + 1
	}
	if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
		return i + 2
	}
	return 0
}

// spanText walks forward from s until the next open delimiter (or EOF).
// If a newline appears in the skipped text and the line beginning just
// after that newline is itself a standalone run, the text is cut short at
// that newline and afterStandalone records where the standalone run ends
// (so the reader can jump past the whitespace it owns); otherwise
// afterStandalone is 0.
func spanText(s, od, cd string) (text string, afterText, afterStandalone int) {
	afterText = strings.Index(s, od)
	if afterText < 0 {
		afterText = len(s)
	}
	endOfText := afterText
	if eol := strings.LastIndexByte(s[:afterText], '\n'); eol >= 0 {
		if isAllIndent(s[eol+1 : afterText]) {
			if n := spanStandalone(s[eol+1:], od, cd); n > 0 {
				endOfText = eol + 1
				afterStandalone = eol + 1 + n
			}
		}
	}
	return s[:endOfText], afterText, afterStandalone
}

func isAllIndent(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isIndentByte(s[i]) {
			return false
		}
	}
	return true
}

// isIndent reports whether s consists solely of horizontal whitespace
// (tabs and spaces). An empty string counts as indent.
func isIndent(s string) bool {
	return isAllIndent(s)
}
