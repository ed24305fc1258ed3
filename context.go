package mustache

// Location carries a section's literal, unrendered body text, passed to
// Context.Child when the lookup is for a {{#name}} section's own name
// (nil otherwise). A lambda adapter uses Text to implement higher-order
// sections: it gets the raw template source between the opening and
// closing tags, untouched by any prior rendering. The renderer fills in
// Text only; Start and End are left at zero.
type Location struct {
	Text       string
	Start, End int
}

// ValueKind distinguishes the two things a Context's Value can mean.
type ValueKind int

const (
	// KindText is a plain resolved value: render (and maybe escape) it.
	KindText ValueKind = iota
	// KindLambda carries already-produced template text that must be
	// recompiled and re-rendered against the current stack.
	KindLambda
)

// Value is what Context.Value returns: either literal text or a lambda's
// output template text awaiting recompilation.
type Value struct {
	Kind ValueKind
	Text string
}

// TextValue builds a KindText Value.
func TextValue(text string) Value { return Value{Kind: KindText, Text: text} }

// LambdaValue builds a KindLambda Value.
func LambdaValue(text string) Value { return Value{Kind: KindLambda, Text: text} }

// Context is the adapter contract between a user's data and the renderer.
// A zero value of any concrete Context implementation should never be
// handed to the engine directly — resolution always goes through Child.
type Context interface {
	// Child resolves name as a key against this Context, returning nil if
	// this Context is not a mapping or has no such key. loc carries the
	// section's literal body text (Location.Text) when the lookup is for a
	// {{#name}} section's own name (nil otherwise), letting adapters
	// implement lambdas that capture their own literal body text; it
	// carries no byte offsets.
	Child(name string, loc *Location) Context

	// Children returns this Context's elements if it is a sequence, or nil
	// otherwise. A nil return (as opposed to an empty, non-nil slice) means
	// "not a sequence" — an adapter representing an empty list must return
	// a non-nil empty slice.
	Children() []Context

	// Value returns this Context's scalar value.
	Value() Value

	// IsFalsy reports whether this Context should be treated as false for
	// section/inverted-section purposes. Mustache pins null and boolean
	// false as falsy; other cases (empty string, zero) are adapter policy.
	IsFalsy() bool
}
