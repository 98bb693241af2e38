package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the closed set of failure kinds. Callers branch
// with errors.Is; the concrete *Error carries the structured context.
var (
	// ErrIO marks an unreadable config, definitions or include file.
	ErrIO = errors.New("i/o failure")
	// ErrSyntax marks a malformed line in a config or definitions file.
	ErrSyntax = errors.New("syntax error")
	// ErrTypeConflict marks an inline type that disagrees with the
	// definitions-declared type for the same keyword.
	ErrTypeConflict = errors.New("type conflict")
	// ErrUndefinedKeyword marks a keyword absent from the definitions
	// file while undefined keywords are not accepted.
	ErrUndefinedKeyword = errors.New("undefined keyword")
	// ErrDisallowedValue marks a value outside a keyword's
	// allowed-values set.
	ErrDisallowedValue = errors.New("value not allowed")
	// ErrNotFound marks an accessor call for a section or keyword that
	// was never seen during parsing.
	ErrNotFound = errors.New("not found")
)

// Error is the structured error surfaced by construction and
// accessors. Kind is always one of the sentinel errors above.
type Error struct {
	Kind    error
	File    string
	Line    int
	Section string
	Keyword string
	Msg     string
	Err     error // wrapped cause, set for ErrIO
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.File != "" {
		fmt.Fprintf(&b, " in %s", e.File)
		if e.Line > 0 {
			fmt.Fprintf(&b, " line %d", e.Line)
		}
	}
	if e.Section != "" {
		fmt.Fprintf(&b, ", section %q", e.Section)
	}
	if e.Keyword != "" {
		fmt.Fprintf(&b, ", keyword %q", e.Keyword)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is matches against the kind sentinels so that
// errors.Is(err, ErrSyntax) works.
func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

func ioError(file string, line int, cause error) *Error {
	return &Error{Kind: ErrIO, File: file, Line: line, Err: cause}
}

func syntaxError(file string, line int, format string, args ...any) *Error {
	return &Error{Kind: ErrSyntax, File: file, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func notFoundError(section, keyword, format string, args ...any) *Error {
	return &Error{Kind: ErrNotFound, Section: section, Keyword: keyword, Msg: fmt.Sprintf(format, args...)}
}

// decorate fills file position and keyword context into an *Error
// raised below the parser, where neither is known.
func decorate(err error, ln RawLine, section, keyword string) error {
	if e, ok := err.(*Error); ok {
		e.File = ln.File
		e.Line = ln.Line
		e.Section = section
		e.Keyword = keyword
	}
	return err
}
