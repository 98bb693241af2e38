package config

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/sirupsen/logrus"
)

// Line grammar of the main config file. A section header sits at
// column 0; keyword lines are indented. An optional "(type)" between
// keyword and "=" overrides the declared type for that line.
var (
	sectionRe      = regexp.MustCompile(`^([\w-]+):\s*$`)
	keywordRe      = regexp.MustCompile(`^[ \t]+([\w.-]+)\s*=\s*(.*)$`)
	typedKeywordRe = regexp.MustCompile(`^[ \t]+([\w.-]+)\s+\((\w+)\)\s*=\s*(.*)$`)
)

// parser folds assembled lines into a Config. It is a two-state
// machine: outside any section, or inside the current one.
type parser struct {
	logger          *logrus.Logger
	defs            *definitions // nil when no definitions file was given
	acceptUndefined bool

	cfg     *Config
	section string // empty while no section header has been seen
}

func (p *parser) run(lines []RawLine) error {
	for _, ln := range lines {
		if m := sectionRe.FindStringSubmatch(ln.Text); m != nil {
			p.enterSection(m[1])
			continue
		}

		var keyword, inlineType, rawValue string
		if m := typedKeywordRe.FindStringSubmatch(ln.Text); m != nil {
			keyword, inlineType, rawValue = m[1], m[2], m[3]
		} else if m := keywordRe.FindStringSubmatch(ln.Text); m != nil {
			keyword, rawValue = m[1], m[2]
		} else {
			return syntaxError(ln.File, ln.Line, "unrecognized line %q", ln.Text)
		}

		if p.section == "" {
			return syntaxError(ln.File, ln.Line, "keyword %q before any section", keyword)
		}
		if err := p.keywordLine(ln, keyword, inlineType, rawValue); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) enterSection(name string) {
	p.section = name
	if _, ok := p.cfg.entries[name]; !ok {
		p.cfg.sections = append(p.cfg.sections, name)
		p.cfg.entries[name] = make(map[string]Value)
		p.cfg.keywords[name] = nil
	}
}

func (p *parser) keywordLine(ln RawLine, keyword, inlineType, rawValue string) error {
	def := Definition{Section: p.section, Keyword: keyword}
	if p.defs != nil {
		if !p.defs.known(p.section, keyword) && !p.acceptUndefined {
			return &Error{
				Kind:    ErrUndefinedKeyword,
				File:    ln.File,
				Line:    ln.Line,
				Section: p.section,
				Keyword: keyword,
				Msg:     "not declared in the definitions file",
			}
		}
		def = p.defs.resolve(p.section, keyword)
	}

	typ := def.Type
	if inlineType != "" {
		override, ok := parseValueType(inlineType)
		if !ok {
			return syntaxError(ln.File, ln.Line, "invalid type %q for keyword %q", inlineType, keyword)
		}
		if typ != typeUnset && typ != override {
			return &Error{
				Kind:    ErrTypeConflict,
				File:    ln.File,
				Line:    ln.Line,
				Section: p.section,
				Keyword: keyword,
				Msg:     "config file says " + override.String() + ", definitions file says " + typ.String(),
			}
		}
		typ = override
	}
	if typ == typeUnset {
		typ = TypeScalar
	}

	sep := def.Separator
	if sep == 0 {
		sep = DefaultSeparator
	}

	p.logger.WithFields(logrus.Fields{
		"section": p.section,
		"keyword": keyword,
		"type":    typ.String(),
	}).Debug("resolved keyword type")

	val, err := splitValue(typ, rawValue, sep)
	if err != nil {
		return decorate(err, ln, p.section, keyword)
	}
	if err := p.checkAllowed(ln, keyword, def.Allowed, val); err != nil {
		return err
	}
	return p.merge(ln, keyword, val)
}

// checkAllowed verifies every produced scalar, array element or hash
// value against the definition's allowed-values set. Hash keys are
// not checked.
func (p *parser) checkAllowed(ln RawLine, keyword string, allowed []string, val Value) error {
	if allowed == nil {
		return nil
	}
	var members []string
	switch val.Kind() {
	case TypeScalar:
		members = []string{val.Scalar()}
	case TypeArray:
		members = val.array
	case TypeHash:
		for _, k := range val.hash.keys {
			members = append(members, val.hash.vals[k])
		}
	}
	for _, m := range members {
		if !slices.Contains(allowed, m) {
			return &Error{
				Kind:    ErrDisallowedValue,
				File:    ln.File,
				Line:    ln.Line,
				Section: p.section,
				Keyword: keyword,
				Msg:     fmt.Sprintf("value %q is not in the allowed-values list", m),
			}
		}
	}
	return nil
}

// merge folds a parsed value into the table. A scalar replaces any
// earlier value, an array appends to it and a hash updates existing
// keys in place while appending new ones.
func (p *parser) merge(ln RawLine, keyword string, val Value) error {
	sec := p.cfg.entries[p.section]
	old, exists := sec[keyword]
	if !exists {
		sec[keyword] = val
		p.cfg.keywords[p.section] = append(p.cfg.keywords[p.section], keyword)
		return nil
	}
	if old.Kind() != val.Kind() {
		return &Error{
			Kind:    ErrTypeConflict,
			File:    ln.File,
			Line:    ln.Line,
			Section: p.section,
			Keyword: keyword,
			Msg:     "earlier occurrence was " + old.Kind().String() + ", this one is " + val.Kind().String(),
		}
	}
	switch val.Kind() {
	case TypeScalar:
		sec[keyword] = val
	case TypeArray:
		old.array = append(old.array, val.array...)
		sec[keyword] = old
	case TypeHash:
		for _, k := range val.hash.keys {
			old.hash.set(k, val.hash.vals[k])
		}
	}
	return nil
}
