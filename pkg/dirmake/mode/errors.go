package mode

import "fmt"

// ErrKind identifies the way a mode expression failed to parse. Tests and
// callers branch on the kind; the message wording lives in Error() alone.
type ErrKind int

const (
	// KindEmpty means the expression was empty.
	KindEmpty ErrKind = iota
	// KindBadSegment means a class-form segment had no '=' separator.
	KindBadSegment
	// KindBadPerms means a segment's permissions contained a character
	// outside r, w, x.
	KindBadPerms
	// KindBadClass means a segment named an unknown permission class.
	KindBadClass
	// KindBadExpression means a shorthand expression contained a character
	// outside r, w, x.
	KindBadExpression
)

// ParseError describes a malformed mode expression. Expr is the full
// expression, Segment the offending class=perms segment (class grammar
// only) and Class the rejected class token (KindBadClass only).
type ParseError struct {
	Kind    ErrKind
	Expr    string
	Segment string
	Class   string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindEmpty:
		return "mode must be defined"
	case KindBadSegment:
		return fmt.Sprintf("invalid permission format: '%s'", e.Segment)
	case KindBadPerms:
		return fmt.Sprintf("invalid permissions in: %s", e.Segment)
	case KindBadClass:
		return fmt.Sprintf("unknown class or permission: %s", e.Segment)
	case KindBadExpression:
		return fmt.Sprintf("invalid mode: %s", e.Expr)
	default:
		return fmt.Sprintf("invalid mode expression: %s", e.Expr)
	}
}
