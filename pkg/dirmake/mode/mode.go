// Package mode parses symbolic permission-mode expressions into a
// nine-flag owner/group/other permission set.
//
// Two grammars are supported, selected by the presence of '=':
//
//	u=rwx,g=rx,o=r   class form: comma-separated class=perms segments
//	rwx              shorthand: applied to user, group and other alike
//
// Octal modes are intentionally not supported.
package mode

import (
	"io/fs"
	"strings"
)

// Set holds one flag per permission bit. The zero value has every flag
// false; Parse is the only constructor that should produce a Set.
type Set struct {
	UserRead     bool
	UserWrite    bool
	UserExecute  bool
	GroupRead    bool
	GroupWrite   bool
	GroupExecute bool
	OtherRead    bool
	OtherWrite   bool
	OtherExecute bool
}

// POSIX permission bit positions.
const (
	bitUserRead     fs.FileMode = 0o400
	bitUserWrite    fs.FileMode = 0o200
	bitUserExecute  fs.FileMode = 0o100
	bitGroupRead    fs.FileMode = 0o040
	bitGroupWrite   fs.FileMode = 0o020
	bitGroupExecute fs.FileMode = 0o010
	bitOtherRead    fs.FileMode = 0o004
	bitOtherWrite   fs.FileMode = 0o002
	bitOtherExecute fs.FileMode = 0o001
)

// Parse parses a symbolic mode expression. The expression is lower-cased
// before parsing; class and permission letters are case-insensitive.
// An expression containing '=' anywhere is parsed entirely under the
// class grammar, even if parts of it look like shorthand.
func Parse(expr string) (*Set, error) {
	lowered := strings.ToLower(expr)

	if lowered == "" {
		return nil, &ParseError{Kind: KindEmpty, Expr: expr}
	}

	if strings.Contains(lowered, "=") {
		return parseClasses(lowered)
	}
	return parseShorthand(expr, lowered)
}

func parseClasses(expr string) (*Set, error) {
	set := &Set{}
	for _, segment := range strings.Split(expr, ",") {
		class, perms, ok := strings.Cut(segment, "=")
		if !ok {
			return nil, &ParseError{Kind: KindBadSegment, Expr: expr, Segment: segment}
		}
		if !validPerms(perms) {
			return nil, &ParseError{Kind: KindBadPerms, Expr: expr, Segment: segment}
		}
		for _, perm := range perms {
			if !set.apply(class, perm) {
				return nil, &ParseError{Kind: KindBadClass, Expr: expr, Segment: segment, Class: class}
			}
		}
	}
	return set, nil
}

func parseShorthand(original, lowered string) (*Set, error) {
	if !validPerms(lowered) {
		// The shorthand error echoes the expression as the user wrote it.
		return nil, &ParseError{Kind: KindBadExpression, Expr: original}
	}

	read := strings.ContainsRune(lowered, 'r')
	write := strings.ContainsRune(lowered, 'w')
	exec := strings.ContainsRune(lowered, 'x')

	return &Set{
		UserRead:     read,
		UserWrite:    write,
		UserExecute:  exec,
		GroupRead:    read,
		GroupWrite:   write,
		GroupExecute: exec,
		OtherRead:    read,
		OtherWrite:   write,
		OtherExecute: exec,
	}, nil
}

func validPerms(perms string) bool {
	for _, c := range perms {
		if c != 'r' && c != 'w' && c != 'x' {
			return false
		}
	}
	return true
}

// apply sets one class/permission flag. Repeated flags are idempotent and
// repeated classes accumulate. It reports whether the class was known.
func (s *Set) apply(class string, perm rune) bool {
	switch class {
	case "u":
		switch perm {
		case 'r':
			s.UserRead = true
		case 'w':
			s.UserWrite = true
		case 'x':
			s.UserExecute = true
		}
	case "g":
		switch perm {
		case 'r':
			s.GroupRead = true
		case 'w':
			s.GroupWrite = true
		case 'x':
			s.GroupExecute = true
		}
	case "o":
		switch perm {
		case 'r':
			s.OtherRead = true
		case 'w':
			s.OtherWrite = true
		case 'x':
			s.OtherExecute = true
		}
	default:
		return false
	}
	return true
}

// FileMode converts the set to permission bits. The conversion is total:
// every combination of the nine flags maps to exactly one value.
func (s *Set) FileMode() fs.FileMode {
	var bits fs.FileMode
	if s.UserRead {
		bits |= bitUserRead
	}
	if s.UserWrite {
		bits |= bitUserWrite
	}
	if s.UserExecute {
		bits |= bitUserExecute
	}
	if s.GroupRead {
		bits |= bitGroupRead
	}
	if s.GroupWrite {
		bits |= bitGroupWrite
	}
	if s.GroupExecute {
		bits |= bitGroupExecute
	}
	if s.OtherRead {
		bits |= bitOtherRead
	}
	if s.OtherWrite {
		bits |= bitOtherWrite
	}
	if s.OtherExecute {
		bits |= bitOtherExecute
	}
	return bits
}

// String renders the set in ls-style rwxr-x--- notation.
func (s *Set) String() string {
	flags := [9]bool{
		s.UserRead, s.UserWrite, s.UserExecute,
		s.GroupRead, s.GroupWrite, s.GroupExecute,
		s.OtherRead, s.OtherWrite, s.OtherExecute,
	}
	letters := [3]byte{'r', 'w', 'x'}

	var b strings.Builder
	for i, on := range flags {
		if on {
			b.WriteByte(letters[i%3])
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
