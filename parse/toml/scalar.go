package toml

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// =========================
// String decoding
// =========================

// decodeBasicString resolves the escapes of a basic string body. For
// multi-line bodies a backslash at the end of a line also swallows the
// newline and any whitespace that follows it.
func decodeBasicString(s string, multiline bool) (string, error) {
	if !utf8.ValidString(s) {
		return "", errors.New("invalid UTF-8 in string")
	}
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' {
			if !allowedInString(s, i, multiline) {
				return "", errors.Errorf("control character %#x in string", ch)
			}
			out.WriteByte(ch)
			continue
		}
		if i+1 >= len(s) {
			return "", errors.New("invalid escape at end of string")
		}
		i++
		switch s[i] {
		case 'b':
			out.WriteByte('\b')
		case 't':
			out.WriteByte('\t')
		case 'n':
			out.WriteByte('\n')
		case 'f':
			out.WriteByte('\f')
		case 'r':
			out.WriteByte('\r')
		case '"':
			out.WriteByte('"')
		case '\\':
			out.WriteByte('\\')
		case 'u', 'U':
			width := 4
			if s[i] == 'U' {
				width = 8
			}
			if i+width >= len(s) {
				return "", errors.New("invalid unicode escape")
			}
			r, err := parseHexRune(s[i+1 : i+1+width])
			if err != nil {
				return "", err
			}
			out.WriteRune(r)
			i += width
		case ' ', '\t', '\r', '\n':
			if !multiline {
				return "", errors.Errorf("invalid escape %q", s[i])
			}
			j, ok := skipLineContinuation(s, i)
			if !ok {
				return "", errors.New("only whitespace may follow a line-ending backslash")
			}
			i = j - 1
		default:
			return "", errors.Errorf("invalid escape %q", s[i])
		}
	}
	return out.String(), nil
}

// skipLineContinuation returns the index after the whitespace run that
// starts at i, which must contain a newline.
func skipLineContinuation(s string, i int) (int, bool) {
	sawNewline := false
	for ; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t':
		case '\n':
			sawNewline = true
		case '\r':
			if i+1 >= len(s) || s[i+1] != '\n' {
				return i, false
			}
		default:
			return i, sawNewline
		}
	}
	return i, sawNewline
}

func parseHexRune(h string) (rune, error) {
	for i := 0; i < len(h); i++ {
		if !isHexDigit(h[i]) {
			return 0, errors.Errorf("invalid unicode escape %q", h)
		}
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid unicode escape %q", h)
	}
	r := rune(v)
	if !utf8.ValidRune(r) {
		return 0, errors.Errorf("invalid unicode scalar value %q", h)
	}
	return r, nil
}

// allowedInString reports whether the byte at i may appear unescaped.
func allowedInString(s string, i int, multiline bool) bool {
	c := s[i]
	switch {
	case c == '\t':
		return true
	case c == '\n':
		return multiline
	case c == '\r':
		return multiline && i+1 < len(s) && s[i+1] == '\n'
	case c < 0x20 || c == 0x7f:
		return false
	}
	return true
}

// validateLiteral returns a message when a literal string body holds a
// character it cannot hold, and "" otherwise.
func validateLiteral(s string, multiline bool) string {
	for i := 0; i < len(s); i++ {
		if !allowedInString(s, i, multiline) {
			return "control character in literal string"
		}
	}
	if !utf8.ValidString(s) {
		return "invalid UTF-8 in literal string"
	}
	return ""
}

// =========================
// Numbers
// =========================

func isHexDigit(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isFloatToken(s string) bool {
	body := strings.TrimLeft(s, "+-")
	if body == "inf" || body == "nan" {
		return true
	}
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0o") || strings.HasPrefix(body, "0b") {
		return false
	}
	return strings.ContainsAny(body, ".eE")
}

// digitRun checks that s is a non-empty run of digits where every
// underscore sits between two digits.
func digitRun(s string, digit func(byte) bool) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '_' {
			if i == 0 || i == len(s)-1 || !digit(s[i-1]) || !digit(s[i+1]) {
				return false
			}
			continue
		}
		if !digit(s[i]) {
			return false
		}
	}
	return true
}

func splitSign(s string) (sign, body string) {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		return s[:1], s[1:]
	}
	return "", s
}

// validDecimalInt rejects leading zeros, which TOML does not allow.
func validDecimalInt(body string) bool {
	if !digitRun(body, isDigit) {
		return false
	}
	return body == "0" || body[0] != '0'
}

func parseIntToken(s string) (int64, error) {
	sign, body := splitSign(s)
	base := 10
	digit := isDigit
	switch {
	case strings.HasPrefix(body, "0x"):
		base, digit = 16, isHexDigit
	case strings.HasPrefix(body, "0o"):
		base, digit = 8, func(c byte) bool { return '0' <= c && c <= '7' }
	case strings.HasPrefix(body, "0b"):
		base, digit = 2, func(c byte) bool { return c == '0' || c == '1' }
	}
	if base != 10 {
		if sign != "" {
			return 0, errors.New("prefixed integers cannot carry a sign")
		}
		if !digitRun(body[2:], digit) {
			return 0, errors.New("malformed integer")
		}
		v, err := strconv.ParseUint(strings.ReplaceAll(body[2:], "_", ""), base, 64)
		if err != nil || v > math.MaxInt64 {
			return 0, errors.New("integer out of range")
		}
		return int64(v), nil
	}
	if !validDecimalInt(body) {
		return 0, errors.New("malformed integer")
	}
	v, err := strconv.ParseInt(sign+strings.ReplaceAll(body, "_", ""), 10, 64)
	if err != nil {
		return 0, errors.New("integer out of range")
	}
	return v, nil
}

func parseFloatToken(s string) (float64, error) {
	sign, body := splitSign(s)
	switch body {
	case "inf":
		if sign == "-" {
			return math.Inf(-1), nil
		}
		return math.Inf(+1), nil
	case "nan":
		if sign == "-" {
			return math.Copysign(math.NaN(), -1), nil
		}
		return math.NaN(), nil
	}

	mantissa, exponent := body, ""
	if i := strings.IndexAny(body, "eE"); i >= 0 {
		mantissa, exponent = body[:i], body[i+1:]
		_, expDigits := splitSign(exponent)
		if !digitRun(expDigits, isDigit) {
			return 0, errors.New("malformed exponent")
		}
	}
	intPart, frac, hasFrac := strings.Cut(mantissa, ".")
	if !validDecimalInt(intPart) {
		return 0, errors.New("malformed float")
	}
	if hasFrac && !digitRun(frac, isDigit) {
		return 0, errors.New("malformed fraction")
	}
	f, err := strconv.ParseFloat(sign+strings.ReplaceAll(body, "_", ""), 64)
	if err != nil {
		return 0, errors.Wrap(err, "float out of range")
	}
	return f, nil
}
