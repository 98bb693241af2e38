package config

import "strings"

// The splitter works in two passes: tokens are first cut out of the
// raw text with escapes and quotes intact, so that hash pairs can
// still find their first unescaped "=", and each piece is unquoted and
// unescaped only at the end.

// splitValue parses raw value text into a Value of the given type
// using sep as the element separator. Errors carry no file position;
// the parser fills that in.
func splitValue(typ ValueType, raw string, sep rune) (Value, error) {
	switch typ {
	case TypeArray:
		tokens, err := splitTokens(raw, sep)
		if err != nil {
			return Value{}, err
		}
		items := make([]string, len(tokens))
		for i, tok := range tokens {
			items[i] = unquoteToken(tok)
		}
		return arrayValue(items), nil

	case TypeHash:
		tokens, err := splitTokens(raw, sep)
		if err != nil {
			return Value{}, err
		}
		h := newHash()
		for _, tok := range tokens {
			key, val, ok := splitPair(tok)
			if !ok {
				return Value{}, syntaxError("", 0, "hash entry %q is not of the form key=value", strings.TrimSpace(tok))
			}
			key = unescape(strings.TrimSpace(key))
			if key == "" {
				return Value{}, syntaxError("", 0, "hash entry %q has an empty key", strings.TrimSpace(tok))
			}
			h.set(key, unquoteToken(val))
		}
		return hashValue(h), nil

	default:
		// a scalar is never split, but quotes still have to balance
		tokens, err := splitTokens(raw, 0)
		if err != nil {
			return Value{}, err
		}
		return scalarValue(unquoteToken(tokens[0])), nil
	}
}

// splitTokens cuts raw into tokens on unescaped occurrences of sep
// outside quoted regions. The tokens are returned verbatim, escapes
// and quotes included. A sep of 0 never splits, which validates the
// quoting of the whole text. Empty input yields one empty token.
func splitTokens(raw string, sep rune) ([]string, error) {
	var (
		tokens  []string
		start   int
		escaped bool
		quote   rune
	)
	for i, r := range raw {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == sep:
			tokens = append(tokens, raw[start:i])
			start = i + len(string(r))
		}
	}
	if quote != 0 {
		return nil, syntaxError("", 0, "unmatched %c quote in %q", quote, raw)
	}
	return append(tokens, raw[start:]), nil
}

// splitPair cuts a raw hash token at its first unescaped, unquoted
// "=". The value half may contain further "=" characters.
func splitPair(raw string) (key, value string, ok bool) {
	var (
		escaped bool
		quote   rune
	)
	for i, r := range raw {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '=':
			return raw[:i], raw[i+1:], true
		}
	}
	return "", "", false
}

// unquoteToken trims surrounding whitespace, strips one pair of fully
// wrapping matching quotes (which preserves the whitespace inside
// them) and resolves escapes.
func unquoteToken(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 {
		if q := s[0]; q == '\'' || q == '"' {
			if s[len(s)-1] == q {
				return unescape(s[1 : len(s)-1])
			}
		}
	}
	return unescape(s)
}

// unescape consumes each backslash and keeps the following character
// literally: \\ yields a backslash, \, a separator, and any other
// escaped character stands for itself.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	if escaped {
		b.WriteByte('\\')
	}
	return b.String()
}
