package mustache

import "fmt"

// parse compiles src into a segment tree using the standard {{ }}
// delimiters.
func parse(src string) ([]segment, error) {
	return parseWithDelims(src, "{{", "}}")
}

// parseWithDelims compiles src starting from a non-default delimiter
// pair. Lambda sections recompile their captured body text through this
// entry point, using the delimiters in effect at the section tag.
func parseWithDelims(src, od, cd string) ([]segment, error) {
	r := newReader(src)
	r.od, r.cd = od, cd
	segs, end, err := parseBody(r)
	if err != nil {
		return nil, err
	}
	if end.kind == tokEndSection {
		return nil, &parseError{line: lineAt(src, r.pos), message: fmt.Sprintf("unmatched closing tag %q", closingTag(end.text, end.qualifier))}
	}
	return segs, nil
}

// parseBody consumes tokens until either EOF or an EndSection token, which
// it returns unconsumed-by-name to its caller: the caller (parseBody's own
// recursive invocation for a Section/InvertedSection/Block/Parent opener)
// is responsible for checking the returned token's (name, qualifier)
// pair against its own opener. A sequence-check section must close with
// {{/?name}} and a dynamic parent with {{/*name}}; nesting depth itself
// is tracked by this recursion, not by anything the lexer records.
func parseBody(r *reader) ([]segment, token, error) {
	var segs []segment
	for {
		startPos := r.pos
		tok, ok := r.popFront()
		if !ok {
			return segs, token{}, nil
		}
		switch tok.kind {
		case tokError:
			return nil, token{}, &parseError{line: lineAt(r.src, startPos), message: tok.text}

		case tokText:
			if tok.text != "" {
				segs = append(segs, textSeg{text: tok.text, startsNewLine: tok.startsNewLine})
			}

		case tokComment:
			// comments produce no segment

		case tokDelimiters:
			r.setDelimiters(tok.od, tok.cd)

		case tokValue:
			segs = append(segs, valueSeg{name: tok.text, escaped: tok.escaped, startsNewLine: tok.startsNewLine})

		case tokSection:
			mode := modeNormal
			if tok.isSeqCheck {
				mode = modeSeqCheck
			}
			od, cd := r.od, r.cd
			body, end, err := parseBody(r)
			if err != nil {
				return nil, token{}, err
			}
			if end.kind != tokEndSection || end.text != tok.text || end.qualifier != tok.qualifier {
				return nil, token{}, &parseError{line: lineAt(r.src, startPos), message: fmt.Sprintf("unclosed section %q", closingTag(tok.text, tok.qualifier))}
			}
			segs = append(segs, sectionSeg{
				name: tok.text,
				mode: mode,
				body: body,
				raw:  r.src[tok.bodyStart:end.bodyEnd],
				od:   od,
				cd:   cd,
			})

		case tokInvertedSection:
			body, end, err := parseBody(r)
			if err != nil {
				return nil, token{}, err
			}
			if end.kind != tokEndSection || end.text != tok.text || end.qualifier != tok.qualifier {
				return nil, token{}, &parseError{line: lineAt(r.src, startPos), message: fmt.Sprintf("unclosed inverted section %q", tok.text)}
			}
			segs = append(segs, sectionSeg{name: tok.text, mode: modeInverted, body: body})

		case tokBlock:
			body, end, err := parseBody(r)
			if err != nil {
				return nil, token{}, err
			}
			if end.kind != tokEndSection || end.text != tok.text || end.qualifier != tok.qualifier {
				return nil, token{}, &parseError{line: lineAt(r.src, startPos), message: fmt.Sprintf("unclosed block %q", tok.text)}
			}
			segs = append(segs, blockSeg{name: tok.text, body: body})

		case tokParent:
			body, end, err := parseBody(r)
			if err != nil {
				return nil, token{}, err
			}
			if end.kind != tokEndSection || end.text != tok.text || end.qualifier != tok.qualifier {
				return nil, token{}, &parseError{line: lineAt(r.src, startPos), message: fmt.Sprintf("unclosed parent %q", closingTag(tok.text, tok.qualifier))}
			}
			segs = append(segs, parentSeg{name: tok.text, isDynamic: tok.isDynamic, indent: tok.indent, blocks: collectBlocks(body)})

		case tokEndSection:
			return segs, tok, nil

		case tokPartial:
			segs = append(segs, partialSeg{name: tok.text, isDynamic: tok.isDynamic, indent: tok.indent})

		default:
			return nil, token{}, &parseError{line: lineAt(r.src, startPos), message: "unrecognized tag"}
		}
	}
}

// collectBlocks filters a Parent body down to its Block children, which
// become the parameter map substituted into the included template.
// Non-block content at a Parent's top level (stray text, whitespace left
// over from standalone stripping) carries no meaning and is dropped.
func collectBlocks(body []segment) map[string]*blockSeg {
	out := map[string]*blockSeg{}
	for _, s := range body {
		if b, ok := s.(blockSeg); ok {
			bb := b
			out[b.name] = &bb
		}
	}
	return out
}

// closingTag renders the closing tag a name/qualifier pair expects, for
// error messages: {{/?name}} or {{/*name}} when qualified, {{/name}}
// otherwise.
func closingTag(name, qualifier string) string {
	return "{{/" + qualifier + name + "}}"
}

func lineAt(src string, pos int) int {
	if pos > len(src) {
		pos = len(src)
	}
	line := 1
	for i := 0; i < pos; i++ {
		if src[i] == '\n' {
			line++
		}
	}
	return line
}

// parseError is a compile-time error. Compilation is atomic: the first
// error encountered aborts the whole compile.
type parseError struct {
	line    int
	message string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.line, e.message)
}
