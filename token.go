package mustache

// tokenKind identifies the variant a token represents. The zero value is
// not a valid kind, mirroring the teacher's TagType convention.
type tokenKind uint

const (
	tokInvalid tokenKind = iota
	tokText
	tokValue
	tokSection
	tokInvertedSection
	tokBlock
	tokEndSection
	tokPartial
	tokParent
	tokDelimiters
	tokComment
	tokError
)

// token is a single lexical item produced by the reader. Only the fields
// relevant to its kind are populated; see the per-kind constructors below.
type token struct {
	kind tokenKind

	text          string // Text literal / Value,Section,...  name / Comment body / Error message
	startsNewLine bool   // Text, Value

	escaped bool // Value: true for {{x}}, false for {{&x}} / {{{x}}}

	isSeqCheck bool // Section: true for {{#?name}}
	bodyStart  int  // Section: byte offset just past the opening tag's own standalone line (or just past the tag)

	bodyEnd int // EndSection: byte offset just before the closing tag's own standalone line (or just before the tag)

	isDynamic bool   // Partial, Parent: true for {{>*name}} / {{<*name}}
	indent    string // Partial, Parent: indentation captured at the tag's line

	// qualifier is the sigil an opener (Section, Parent) and its matching
	// EndSection must agree on for balance checking: "?" for a
	// sequence-check section, "*" for a dynamic parent, "" otherwise.
	// InvertedSection and Block never carry one.
	qualifier string

	od, cd string // Delimiters
}

func textToken(text string, startsNewLine bool) token {
	return token{kind: tokText, text: text, startsNewLine: startsNewLine}
}

func valueToken(name string, escaped, startsNewLine bool) token {
	return token{kind: tokValue, text: name, escaped: escaped, startsNewLine: startsNewLine}
}

func sectionToken(name string, bodyStart int, isSeqCheck bool) token {
	qualifier := ""
	if isSeqCheck {
		qualifier = "?"
	}
	return token{kind: tokSection, text: name, bodyStart: bodyStart, isSeqCheck: isSeqCheck, qualifier: qualifier}
}

func invertedSectionToken(name string) token {
	return token{kind: tokInvertedSection, text: name}
}

func blockToken(name string) token {
	return token{kind: tokBlock, text: name}
}

func endSectionToken(name, qualifier string, bodyEnd int) token {
	return token{kind: tokEndSection, text: name, qualifier: qualifier, bodyEnd: bodyEnd}
}

func partialToken(name string, isDynamic bool, indent string) token {
	return token{kind: tokPartial, text: name, isDynamic: isDynamic, indent: indent}
}

func parentToken(name string, isDynamic bool, indent string) token {
	qualifier := ""
	if isDynamic {
		qualifier = "*"
	}
	return token{kind: tokParent, text: name, isDynamic: isDynamic, indent: indent, qualifier: qualifier}
}

func delimitersToken(od, cd string) token {
	return token{kind: tokDelimiters, od: od, cd: cd}
}

func commentToken(text string) token {
	return token{kind: tokComment, text: text}
}

func errorToken(message string) token {
	return token{kind: tokError, text: message}
}
