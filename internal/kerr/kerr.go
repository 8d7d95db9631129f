// Package kerr defines the structured error categories the lexer, parser,
// and evaluator raise.
package kerr

import (
	"fmt"

	"github.com/noobforanonymous/keikaku-programming-language/internal/token"
)

// Kind identifies one of the categories a RuntimeError can belong to.
type Kind string

const (
	UndefinedName    Kind = "UndefinedName"
	NotCallable      Kind = "NotCallable"
	DivisionByZero   Kind = "DivisionByZero"
	TypeMismatch     Kind = "TypeMismatch"
	IndexOutOfBounds Kind = "IndexOutOfBounds"
	InvalidSlice     Kind = "InvalidSlice"
	NoSuchMethod     Kind = "NoSuchMethod"
	NoSuchMember     Kind = "NoSuchMember"
	PrivateAccess    Kind = "PrivateAccess"
	SelfOutsideMethod Kind = "SelfOutsideMethod"
	NoParent         Kind = "NoParent"
	UndefinedParent  Kind = "UndefinedParent"
	NotIterable      Kind = "NotIterable"
	PromiseRejected  Kind = "PromiseRejected"
	ImportFailed     Kind = "ImportFailed"
	SyntaxError      Kind = "SyntaxError"
)

// RuntimeError is the error type the evaluator threads through a Value
// variant (see internal/runtime.ErrorValue); it also satisfies the standard
// error interface so host-level callers (cmd/keikaku) can report it plainly.
type RuntimeError struct {
	Kind    Kind
	Message string
	Pos     token.Position
}

func (e *RuntimeError) Error() string {
	if e.Pos.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// New builds a RuntimeError of the given kind.
func New(kind Kind, pos token.Position, message string) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: message, Pos: pos}
}

// Newf builds a RuntimeError with a formatted message.
func Newf(kind Kind, pos token.Position, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// These exact phrasings are the observable diagnostic contract: callers and
// tests match on this text, so changing it is a compatibility break.
const (
	MsgDivisionByZero      = "Division by zero. Even infinity has its limits."
	MsgPrivateAccess       = "Access to private member inhibited."
	MsgPrivateAssign       = "Modification of private member inhibited."
	MsgOnlyInstanceMembers = "Only instances have members."
	MsgOnlyInstanceProps   = "Only instances have properties."
	MsgNoParent            = "This entity does not ascend to any parent."
	MsgSelfOutsideMethod   = "'self' can only be used inside a method."
	MsgNotIterable         = "Can only cycle through a list or sequence."
	MsgInvalidSliceStep    = "Slice step cannot be zero."
	MsgInvalidSliceTarget  = "Slice requires list or string."
	MsgIndexOutOfBounds    = "List index out of bounds."
	MsgInvalidIndexTarget  = "Invalid index access."
	MsgInvalidAssignTarget = "Invalid assignment target."
	MsgNonListDestructure  = "Unable to destructure non-list value."
	MsgPromiseRejected     = "Promise rejected"
)

// CompileErrors aggregates lexer/parser failures surfaced before evaluation
// begins; FormatErrors renders them the way cmd/keikaku prints to stderr.
type CompileErrors struct {
	Errors []error
}

func (c *CompileErrors) Error() string {
	return FormatErrors(c.Errors)
}

// FormatErrors renders a list of errors one per line, prefixed for display.
func FormatErrors(errs []error) string {
	out := ""
	for i, e := range errs {
		if i > 0 {
			out += "\n"
		}
		out += "syntax error: " + e.Error()
	}
	return out
}
