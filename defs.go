package config

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// Field names recognized in a definitions file.
const (
	defsKeyword   = "keyword"
	defsType      = "type"
	defsSeparator = "separator"
	defsAllowed   = "allowed-values"
)

// allowed-values always splits on a comma, whatever separator the
// definition declares for the config file itself.
const allowedValSep = ','

var (
	defsLineRe   = regexp.MustCompile(`^([\w-]+)\s*=\s*(.*)$`)
	defsScopedRe = regexp.MustCompile(`^([\w-]+):([\w.-]+)$`)
)

// definitions is the table built from a definitions file, keyed by
// "keyword" for global entries and "section:keyword" for
// section-specific ones.
type definitions struct {
	entries map[string]*Definition
}

// loadDefinitions assembles and parses a definitions file. A record
// starts at each "keyword = ..." line; later records for the same
// identity overwrite earlier ones.
func loadDefinitions(path string, logger *logrus.Logger) (*definitions, error) {
	lines, err := assembleFile(path, logger)
	if err != nil {
		return nil, err
	}

	d := &definitions{entries: make(map[string]*Definition)}
	var cur *Definition

	for _, ln := range lines {
		m := defsLineRe.FindStringSubmatch(ln.Text)
		if m == nil {
			return nil, syntaxError(ln.File, ln.Line, "invalid definitions line %q", ln.Text)
		}
		field, value := m[1], m[2]

		if field == defsKeyword {
			if cur != nil {
				d.store(cur)
			}
			cur = &Definition{Keyword: value}
			if sm := defsScopedRe.FindStringSubmatch(value); sm != nil {
				cur.Section = sm[1]
				cur.Keyword = sm[2]
			}
			continue
		}
		if cur == nil {
			return nil, syntaxError(ln.File, ln.Line, "%q before any keyword definition", field)
		}

		switch field {
		case defsType:
			t, ok := parseValueType(value)
			if !ok {
				return nil, syntaxError(ln.File, ln.Line, "invalid type %q for keyword %q", value, cur.Keyword)
			}
			cur.Type = t
		case defsSeparator:
			sep := stripMatchingQuotes(value)
			if utf8.RuneCountInString(sep) != 1 {
				return nil, syntaxError(ln.File, ln.Line, "separator %q must be a single character", value)
			}
			cur.Separator, _ = utf8.DecodeRuneInString(sep)
		case defsAllowed:
			if strings.TrimSpace(value) == "" {
				return nil, syntaxError(ln.File, ln.Line, "empty allowed-values for keyword %q", cur.Keyword)
			}
			tokens, err := splitTokens(value, allowedValSep)
			if err != nil {
				return nil, decorate(err, ln, "", cur.Keyword)
			}
			allowed := make([]string, len(tokens))
			for i, tok := range tokens {
				allowed[i] = unquoteToken(tok)
			}
			cur.Allowed = allowed
		default:
			return nil, syntaxError(ln.File, ln.Line, "invalid definitions field %q", field)
		}
	}
	if cur != nil {
		d.store(cur)
	}

	logger.WithFields(logrus.Fields{
		"file":    path,
		"entries": len(d.entries),
	}).Debug("loaded definitions")
	return d, nil
}

func (d *definitions) store(def *Definition) {
	key := def.Keyword
	if def.Section != "" {
		key = def.Section + ":" + def.Keyword
	}
	d.entries[key] = def
}

// known reports whether the keyword may appear in the section, by
// section-specific or by bare identity.
func (d *definitions) known(section, keyword string) bool {
	if _, ok := d.entries[section+":"+keyword]; ok {
		return true
	}
	_, ok := d.entries[keyword]
	return ok
}

// resolve merges the global and section-specific entries for a
// keyword, field by field, with the section-specific entry taking
// priority where both declare a field.
func (d *definitions) resolve(section, keyword string) Definition {
	eff := Definition{Section: section, Keyword: keyword}
	for _, key := range []string{keyword, section + ":" + keyword} {
		def, ok := d.entries[key]
		if !ok {
			continue
		}
		if def.Type != typeUnset {
			eff.Type = def.Type
		}
		if def.Separator != 0 {
			eff.Separator = def.Separator
		}
		if def.Allowed != nil {
			eff.Allowed = def.Allowed
		}
	}
	return eff
}

// stripMatchingQuotes removes one pair of surrounding single or double
// quotes, without touching escapes.
func stripMatchingQuotes(s string) string {
	if len(s) >= 2 {
		if q := s[0]; q == '\'' || q == '"' {
			if s[len(s)-1] == q {
				return s[1 : len(s)-1]
			}
		}
	}
	return s
}
