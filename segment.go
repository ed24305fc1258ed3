package mustache

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EscapeMode selects how a Value segment's escaped interpolation is
// encoded before being written out.
type EscapeMode int

const (
	EscapeHTML EscapeMode = iota
	EscapeJSON
	EscapeRaw
)

// htmlEscapeTable is the fixed set of characters Mustache's default HTML
// escaping rewrites. It is deliberately small: this is not a general HTML
// sanitizer, only the classic Mustache entity set.
var htmlEscapeTable = map[rune]string{
	'&':  "&amp;",
	'<':  "&lt;",
	'>':  "&gt;",
	'"':  "&quot;",
	'\'': "&#39;",
	'/':  "&#47;",
	'=':  "&#61;",
	'`':  "&#96;",
}

func htmlEscape(s string) string {
	if !strings.ContainsAny(s, "&<>\"'/=`") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if e, ok := htmlEscapeTable[r]; ok {
			b.WriteString(e)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// jsonEscape renders s as the body of a JSON string literal, without the
// surrounding quotes.
func jsonEscape(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return s
	}
	return string(b[1 : len(b)-1])
}

// sectionMode distinguishes the three section flavors that share the
// sectionSeg shape.
type sectionMode int

const (
	modeNormal sectionMode = iota
	modeInverted
	modeSeqCheck
)

// segment is one node of the compiled tree. render writes its output (and
// any side effects on the stack, which it must always leave exactly as
// found) into env.
type segment interface {
	render(env *renderEnv) error
}

type textSeg struct {
	text          string
	startsNewLine bool
}

type valueSeg struct {
	name          string
	escaped       bool
	startsNewLine bool
}

// sectionSeg covers {{#name}}, {{^name}} and {{#?name}}. raw/od/cd are
// populated for {{#name}} and {{#?name}} and read only in modeNormal,
// where a lambda Value needs the literal body text recompiled with the
// delimiters active at the opening tag.
type sectionSeg struct {
	name   string
	mode   sectionMode
	body   []segment
	raw    string
	od, cd string
}

type blockSeg struct {
	name string
	body []segment
}

// parentSeg is {{<name}}...{{/name}}; blocks holds the Block children
// collected from its own body, which override same-named blocks in the
// included template.
type parentSeg struct {
	name      string
	isDynamic bool
	indent    string
	blocks    map[string]*blockSeg
}

type partialSeg struct {
	name      string
	isDynamic bool
	indent    string
}

// renderEnv carries everything a segment needs to render: the output
// sink, the context stack, escaping policy, the partial store, inheritance
// overrides currently in scope, partial-recursion bookkeeping, and the
// indentation accumulated from enclosing partials.
type renderEnv struct {
	out            *strings.Builder
	stack          *stack
	escape         EscapeMode
	partials       *PartialStore
	depth          int
	maxDepth       int
	blocks         map[string]*blockSeg
	errorOnMissing bool
	indent         string
}

func (env *renderEnv) writeRaw(s string) {
	env.out.WriteString(s)
}

func (env *renderEnv) writeValue(s string, escaped bool) {
	if escaped {
		switch env.escape {
		case EscapeHTML:
			s = htmlEscape(s)
		case EscapeJSON:
			s = jsonEscape(s)
		case EscapeRaw:
		}
	}
	env.writeRaw(s)
}

func renderAll(segs []segment, env *renderEnv) error {
	for _, s := range segs {
		if err := s.render(env); err != nil {
			return err
		}
	}
	return nil
}

// render emits t.text, reindenting it for an enclosing partial: if indent
// is empty the text passes through untouched; otherwise a line-starting
// text segment is itself prefixed, and every interior newline (but never
// a trailing one) is followed by indent, so the next segment emitted on
// its own line gets reindented without orphaning indentation before EOF
// or before a Value segment that applies its own prefix.
func (t textSeg) render(env *renderEnv) error {
	if env.indent == "" {
		env.writeRaw(t.text)
		return nil
	}
	var b strings.Builder
	b.Grow(len(t.text) + len(env.indent))
	if t.startsNewLine {
		b.WriteString(env.indent)
	}
	for i := 0; i < len(t.text); i++ {
		b.WriteByte(t.text[i])
		if t.text[i] == '\n' && i != len(t.text)-1 {
			b.WriteString(env.indent)
		}
	}
	env.writeRaw(b.String())
	return nil
}

func (v valueSeg) render(env *renderEnv) error {
	val, ok := env.stack.get(v.name)
	if !ok {
		if env.errorOnMissing {
			return fmt.Errorf("missing variable %q", v.name)
		}
		return nil
	}
	if env.indent != "" && v.startsNewLine {
		env.writeRaw(env.indent)
	}
	if val.Kind == KindLambda {
		out, err := renderLambdaText(env, val.Text, "{{", "}}")
		if err != nil {
			return nil
		}
		env.writeValue(out, v.escaped)
		return nil
	}
	env.writeValue(val.Text, v.escaped)
	return nil
}

// renderLambdaText recompiles and renders lambda output text against the
// current stack, returning the rendered result rather than writing it
// directly (the caller still needs to apply escaping).
func renderLambdaText(env *renderEnv, text, od, cd string) (string, error) {
	segs, err := parseWithDelims(text, od, cd)
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	sub := *env
	sub.out = &buf
	if err := renderAll(segs, &sub); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s sectionSeg) render(env *renderEnv) error {
	switch s.mode {
	case modeInverted:
		return s.renderInverted(env)
	case modeSeqCheck:
		return s.renderSeqCheck(env)
	default:
		return s.renderNormal(env)
	}
}

func (s sectionSeg) renderInverted(env *renderEnv) error {
	start := env.stack.len()
	if !env.stack.push(s.name, nil) {
		return renderAll(s.body, env)
	}
	falsy := env.stack.isFalsy()
	env.stack.truncate(start)
	if falsy {
		return renderAll(s.body, env)
	}
	return nil
}

func (s sectionSeg) renderSeqCheck(env *renderEnv) error {
	start := env.stack.len()
	ok := env.stack.push(s.name, nil)
	nonEmpty := ok && env.stack.inSequence() && env.stack.current() != nil
	env.stack.truncate(start)
	if !nonEmpty {
		return nil
	}
	return renderAll(s.body, env)
}

func (s sectionSeg) renderNormal(env *renderEnv) error {
	start := env.stack.len()
	if !env.stack.push(s.name, &Location{Text: s.raw}) {
		return nil
	}

	if cur := env.stack.current(); cur != nil && !env.stack.inSequence() {
		if v := cur.Value(); v.Kind == KindLambda {
			env.stack.truncate(start)
			out, err := renderLambdaText(env, v.Text, s.od, s.cd)
			if err != nil {
				return nil
			}
			env.writeRaw(out)
			return nil
		}
	}

	if env.stack.inSequence() {
		for env.stack.current() != nil {
			if err := renderAll(s.body, env); err != nil {
				env.stack.truncate(start)
				return err
			}
			if !env.stack.next() {
				break
			}
		}
		env.stack.truncate(start)
		return nil
	}

	if env.stack.isFalsy() {
		env.stack.truncate(start)
		return nil
	}
	err := renderAll(s.body, env)
	env.stack.truncate(start)
	return err
}

func (b blockSeg) render(env *renderEnv) error {
	if ov, ok := env.blocks[b.name]; ok {
		return renderAll(ov.body, env)
	}
	return renderAll(b.body, env)
}

func (p parentSeg) render(env *renderEnv) error {
	if env.partials == nil || env.depth >= env.maxDepth {
		return nil
	}
	name := p.name
	if p.isDynamic {
		v, ok := env.stack.get(name)
		if !ok {
			return nil
		}
		name = v.Text
	}
	segs, ok := env.partials.lookup(name)
	if !ok {
		return nil
	}
	sub := *env
	sub.blocks = p.blocks
	sub.depth = env.depth + 1
	sub.indent = env.indent + p.indent
	return renderAll(segs, &sub)
}

func (p partialSeg) render(env *renderEnv) error {
	if env.partials == nil || env.depth >= env.maxDepth {
		return nil
	}
	name := p.name
	if p.isDynamic {
		v, ok := env.stack.get(name)
		if !ok {
			return nil
		}
		name = v.Text
	}
	segs, ok := env.partials.lookup(name)
	if !ok {
		return nil
	}

	sub := *env
	sub.blocks = nil
	sub.depth = env.depth + 1
	sub.indent = env.indent + p.indent
	return renderAll(segs, &sub)
}
