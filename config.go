// Package config reads human-editable config files with sections of
// keyword = value lines, where a value is a scalar by default, or an
// array or associative array ("hash") of strings.
//
// # Format
//
//	section1:
//	    keyword1 = value1, value2, value3    # an array
//	    keyword2 = value1                    # a scalar
//	    keyword3 = key1=val1, key2=val2      # a hash
//
// Comments start with "#", lines ending in a backslash continue on the
// next line, and "#include file" splices another config file in place,
// recursively. Values and array elements may be wrapped in single or
// double quotes to keep leading or trailing whitespace; backslash
// escapes a separator or a backslash inside the data.
//
// An optional definitions file declares, per keyword or per
// section:keyword, the expected type, separator and allowed values:
//
//	keyword        = section1:keyword1
//	type           = array
//	separator      = ,
//	allowed-values = red, green, blue
//
// When a definitions file is given, keywords not declared in it are
// rejected unless WithAcceptUndefinedKeywords is set. Without one, a
// keyword's type may be given inline: "keyword1 (array) = a, b".
//
// # Usage
//
//	cfg, err := config.NewLoader().
//	    WithDefinitions("app-defs.conf").
//	    Load("app.conf")
//	if err != nil { ... }
//	for _, section := range cfg.Sections() {
//	    keywords, _ := cfg.Keywords(section)
//	    ...
//	}
package config

import (
	"github.com/sirupsen/logrus"
)

// Config holds a parsed config file. It is immutable once built, so
// accessors are safe for concurrent readers.
type Config struct {
	sections []string                    // first-seen order
	keywords map[string][]string         // per-section, first-seen order
	entries  map[string]map[string]Value // section -> keyword -> value
	defs     *definitions                // nil when no definitions file was given
}

// Loader builds Config objects. The zero of every option matches the
// historical defaults: no definitions file, undefined keywords
// rejected (when a definitions file is present), no debug output.
type Loader struct {
	defsPath        string
	acceptUndefined bool
	logger          *logrus.Logger
}

// NewLoader returns a Loader with default options. Debug output goes
// to the standard logrus logger, which stays quiet unless its level is
// raised to debug.
func NewLoader() *Loader {
	return &Loader{logger: logrus.StandardLogger()}
}

// WithDefinitions sets the path of the definitions file to validate
// the config file against.
func (l *Loader) WithDefinitions(path string) *Loader {
	l.defsPath = path
	return l
}

// WithAcceptUndefinedKeywords allows keywords that the definitions
// file does not declare. It has no effect without a definitions file.
func (l *Loader) WithAcceptUndefinedKeywords(accept bool) *Loader {
	l.acceptUndefined = accept
	return l
}

// WithLogger routes debug output about file reading, include expansion
// and type resolution to the given logger.
func (l *Loader) WithLogger(logger *logrus.Logger) *Loader {
	l.logger = logger
	return l
}

// Load reads, parses and validates the config file. No Config is
// returned on failure; the error is an *Error matching one of the
// package's kind sentinels.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := &Config{
		keywords: make(map[string][]string),
		entries:  make(map[string]map[string]Value),
	}

	if l.defsPath != "" {
		defs, err := loadDefinitions(l.defsPath, l.logger)
		if err != nil {
			return nil, err
		}
		cfg.defs = defs
	}

	lines, err := assembleFile(path, l.logger)
	if err != nil {
		return nil, err
	}

	p := &parser{
		logger:          l.logger,
		defs:            cfg.defs,
		acceptUndefined: l.acceptUndefined,
		cfg:             cfg,
	}
	if err := p.run(lines); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads a config file with default options and no definitions
// file.
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}

// Sections returns the section names in the order they were first
// seen, without duplicates.
func (c *Config) Sections() []string {
	out := make([]string, len(c.sections))
	copy(out, c.sections)
	return out
}

// Keywords returns the keyword names of a section in the order they
// were first seen, without duplicates. It fails with an ErrNotFound
// kind if the section was never established.
func (c *Config) Keywords(section string) ([]string, error) {
	kws, ok := c.keywords[section]
	if !ok {
		return nil, notFoundError(section, "", "no such section")
	}
	out := make([]string, len(kws))
	copy(out, kws)
	return out, nil
}

// Type returns the resolved type of a keyword in a section. It fails
// with an ErrNotFound kind if the keyword was never set there.
func (c *Config) Type(section, keyword string) (ValueType, error) {
	v, err := c.Values(section, keyword)
	if err != nil {
		return typeUnset, err
	}
	return v.Kind(), nil
}

// TypeOf returns the globally declared type of a keyword, ignoring
// sections: the bare-keyword entry of the definitions file, or
// TypeScalar when there is none.
func (c *Config) TypeOf(keyword string) ValueType {
	if c.defs != nil {
		if def, ok := c.defs.entries[keyword]; ok && def.Type != typeUnset {
			return def.Type
		}
	}
	return TypeScalar
}

// Values returns the stored value of a keyword in a section. It fails
// with an ErrNotFound kind if the keyword was never set there.
func (c *Config) Values(section, keyword string) (Value, error) {
	sec, ok := c.entries[section]
	if !ok {
		return Value{}, notFoundError(section, keyword, "no such section")
	}
	v, ok := sec[keyword]
	if !ok {
		return Value{}, notFoundError(section, keyword, "no such keyword in section")
	}
	return v, nil
}
