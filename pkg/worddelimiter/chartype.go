package worddelimiter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// CharType is the character class bitmask used to find sub-word breaks.
type CharType uint8

const (
	Lower CharType = 1 << iota
	Upper
	Digit
	SubwordDelim

	Alpha    = Lower | Upper
	AlphaNum = Alpha | Digit
)

func (c CharType) isAlpha() bool { return c&Alpha != 0 }
func (c CharType) isDigit() bool { return c&Digit != 0 }
func (c CharType) isUpper() bool { return c&Upper != 0 }
func (c CharType) isDelim() bool { return c&SubwordDelim != 0 }

// DefaultCharType classifies r. Latin-1 runes are classified by case and
// digit predicates, everything else not a letter or number is a delimiter;
// other runes go by Unicode category so that marks and letters without
// case never cause a break.
func DefaultCharType(r rune) CharType {
	if r < 256 {
		switch {
		case unicode.IsLower(r):
			return Lower
		case unicode.IsUpper(r):
			return Upper
		case unicode.IsDigit(r):
			return Digit
		default:
			return SubwordDelim
		}
	}
	switch {
	case unicode.Is(unicode.Lu, r):
		return Upper
	case unicode.Is(unicode.Ll, r):
		return Lower
	case unicode.In(r, unicode.Lt, unicode.Lm, unicode.Lo, unicode.Mn, unicode.Me, unicode.Mc):
		return Alpha
	case unicode.In(r, unicode.Nd, unicode.Nl, unicode.No):
		return Digit
	default:
		return SubwordDelim
	}
}

// TypeTable overrides the class of individual runes.
type TypeTable map[rune]CharType

// Of returns the class of r.
func (t TypeTable) Of(r rune) CharType {
	if c, ok := t[r]; ok {
		return c
	}
	return DefaultCharType(r)
}

var typeRule = regexp.MustCompile(`^(.+?)\s*=>\s*(\S+)\s*$`)

var typeNames = map[string]CharType{
	"LOWER":         Lower,
	"UPPER":         Upper,
	"ALPHA":         Alpha,
	"DIGIT":         Digit,
	"ALPHANUM":      AlphaNum,
	"SUBWORD_DELIM": SubwordDelim,
}

// ParseTypeTable parses rules like "$ => DIGIT" or ", => ALPHA". Blank
// lines and lines starting with '#' are ignored.
func ParseTypeTable(rules []string) (TypeTable, error) {
	table := make(TypeTable)
	for _, rule := range rules {
		rule = strings.TrimSpace(rule)
		if rule == "" || strings.HasPrefix(rule, "#") {
			continue
		}
		m := typeRule.FindStringSubmatch(rule)
		if m == nil {
			return nil, fmt.Errorf("invalid type rule %q", rule)
		}
		char, err := unescape(strings.TrimSpace(m[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid type rule %q: %w", rule, err)
		}
		runes := []rune(char)
		if len(runes) != 1 {
			return nil, fmt.Errorf("invalid type rule %q: expected a single character", rule)
		}
		t, ok := typeNames[m[2]]
		if !ok {
			return nil, fmt.Errorf("invalid type rule %q: unknown type %q", rule, m[2])
		}
		table[runes[0]] = t
	}
	return table, nil
}

// unescape resolves backslash escapes: \n, \t, \r, \b, \f, \uXXXX and a
// backslash before any other character.
func unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' || i == len(runes)-1 {
			b.WriteRune(r)
			continue
		}
		i++
		switch runes[i] {
		case 'n':
			b.WriteRune('\n')
		case 't':
			b.WriteRune('\t')
		case 'r':
			b.WriteRune('\r')
		case 'b':
			b.WriteRune('\b')
		case 'f':
			b.WriteRune('\f')
		case 'u':
			if i+4 >= len(runes) {
				return "", fmt.Errorf("truncated unicode escape in %q", s)
			}
			code, err := strconv.ParseUint(string(runes[i+1:i+5]), 16, 32)
			if err != nil {
				return "", fmt.Errorf("bad unicode escape in %q: %w", s, err)
			}
			b.WriteRune(rune(code))
			i += 4
		default:
			b.WriteRune(runes[i])
		}
	}
	return b.String(), nil
}
