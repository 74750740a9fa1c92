// Package disasm renders decoded Cairo instructions as assembly-like text.
package disasm

// Sentinel strings.
const (
	// UndefinedBehavior is the text of an instruction whose fields form an
	// illegal combination.
	UndefinedBehavior = "Undefined Behavior"
	// Unused is the result expression of a jnz, where res is not computed.
	Unused = "Unused"
)

// Result is either the rendered text of an instruction or the marker for
// undefined behavior.
type Result struct {
	text      string
	undefined bool
}

// Rendered returns a Result carrying text.
func Rendered(text string) Result {
	return Result{text: text}
}

// UndefinedResult returns the Result of an illegal encoding.
func UndefinedResult() Result {
	return Result{undefined: true}
}

// IsUndefined reports whether the instruction has no defined semantics.
func (r Result) IsUndefined() bool {
	return r.undefined
}

// Text returns the rendered statements, or "" for undefined behavior.
func (r Result) Text() string {
	return r.text
}

// String returns the rendered text, or UndefinedBehavior.
func (r Result) String() string {
	if r.undefined {
		return UndefinedBehavior
	}
	return r.text
}
