package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// assembler turns one or more physical files into a stream of logical
// lines. It drops comments and blank lines, splices #include files in
// place and joins backslash continuations across the spliced stream.
type assembler struct {
	logger *logrus.Logger

	// absolute paths of the files currently open in the include
	// chain, to fail fast on include cycles
	active map[string]bool

	physical []RawLine
}

// assembleFile reads path and every file it includes, returning the
// fully assembled logical lines.
func assembleFile(path string, logger *logrus.Logger) ([]RawLine, error) {
	a := &assembler{
		logger: logger,
		active: make(map[string]bool),
	}
	if err := a.readFile(path, "", 0); err != nil {
		return nil, err
	}
	return joinContinuations(a.physical)
}

// readFile appends the comment-stripped physical lines of path,
// recursing into #include directives. from and fromLine identify the
// including line for error context; they are empty for the top file.
func (a *assembler) readFile(path, from string, fromLine int) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ioError(from, fromLine, err)
	}
	if a.active[abs] {
		return syntaxError(from, fromLine, "include cycle: %s is already being read", path)
	}
	a.active[abs] = true
	defer delete(a.active, abs)

	f, err := os.Open(path)
	if err != nil {
		if from == "" {
			return ioError(path, 0, err)
		}
		return ioError(from, fromLine, err)
	}
	defer f.Close()

	a.logger.WithField("file", path).Debug("reading config file")

	lineNum := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNum++
		text := strings.TrimRight(scanner.Text(), "\r\t ")
		trimmed := strings.TrimLeft(text, " \t")

		if target, ok := includeTarget(trimmed); ok {
			if target == "" {
				return syntaxError(path, lineNum, "#include without a file name")
			}
			if !filepath.IsAbs(target) {
				target = filepath.Join(filepath.Dir(abs), target)
			}
			a.logger.WithFields(logrus.Fields{
				"file":    path,
				"line":    lineNum,
				"include": target,
			}).Debug("expanding include")
			if err := a.readFile(target, path, lineNum); err != nil {
				return err
			}
			continue
		}
		if strings.HasPrefix(trimmed, "#") || trimmed == "" {
			continue
		}

		a.physical = append(a.physical, RawLine{File: path, Line: lineNum, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return ioError(path, lineNum, err)
	}
	return nil
}

// includeTarget reports whether a comment-like line is actually an
// include directive, and if so returns its target path.
func includeTarget(trimmed string) (string, bool) {
	rest, ok := strings.CutPrefix(trimmed, "#include")
	if !ok {
		return "", false
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		// something like "#includexyz", an ordinary comment
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// joinContinuations merges lines ending in an unescaped backslash with
// the following line. The leading whitespace of the continuation line
// is dropped. A joined line keeps the file position where it started.
func joinContinuations(lines []RawLine) ([]RawLine, error) {
	out := make([]RawLine, 0, len(lines))
	var pending *RawLine

	for _, ln := range lines {
		if pending != nil {
			ln = RawLine{
				File: pending.File,
				Line: pending.Line,
				Text: pending.Text + strings.TrimLeft(ln.Text, " \t"),
			}
		}
		if endsInContinuation(ln.Text) {
			ln.Text = ln.Text[:len(ln.Text)-1]
			p := ln
			pending = &p
			continue
		}
		pending = nil
		out = append(out, ln)
	}
	if pending != nil {
		return nil, syntaxError(pending.File, pending.Line, "unterminated continuation at end of file")
	}
	return out, nil
}

// endsInContinuation reports whether the line ends in an unescaped
// backslash. A trailing "\\" is an escaped backslash, not a
// continuation; the parity of the trailing run decides.
func endsInContinuation(s string) bool {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}
