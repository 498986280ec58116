package parser

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// intDigits renders an integer literal in base 10 without its type suffix or
// digit separators, so `0x1F_u8` becomes "31".
func intDigits(text string) string {
	base := 10
	body := text
	switch {
	case strings.HasPrefix(body, "0x"), strings.HasPrefix(body, "0X"):
		base, body = 16, body[2:]
	case strings.HasPrefix(body, "0o"):
		base, body = 8, body[2:]
	case strings.HasPrefix(body, "0b"):
		base, body = 2, body[2:]
	}
	if i := strings.IndexAny(body, "iu"); i >= 0 {
		body = body[:i]
	}
	body = strings.ReplaceAll(body, "_", "")
	if body == "" {
		return text
	}
	n, ok := new(big.Int).SetString(body, base)
	if !ok {
		return body
	}
	return n.String()
}

var floatSuffix = regexp.MustCompile(`f(32|64)$`)

// isSuffixedFloat reports whether an integer token such as `1f32` is really a
// float literal. Hex digits may end in "f32" too, so `0x1f32` stays an integer.
func isSuffixedFloat(text string) bool {
	if len(text) > 1 && text[0] == '0' && strings.ContainsRune("xXob", rune(text[1])) {
		return false
	}
	return floatSuffix.MatchString(text)
}

func floatDigits(text string) string {
	return strings.ReplaceAll(floatSuffix.ReplaceAllString(text, ""), "_", "")
}

var rawString = regexp.MustCompile(`(?s)^r(#*)"(.*)"(#*)$`)

// stringValue decodes a string literal. Byte and C strings are rejected so
// that they fall through to the Other fallback.
func stringValue(text string) (string, bool) {
	if strings.HasPrefix(text, "b") || strings.HasPrefix(text, "c") {
		return "", false
	}
	if m := rawString.FindStringSubmatch(text); m != nil {
		if m[1] != m[3] {
			return "", false
		}
		return m[2], true
	}
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return "", false
	}
	return unescape(text[1 : len(text)-1])
}

func unescape(s string) (string, bool) {
	var sb strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '\\' {
			r, size := utf8.DecodeRuneInString(s[i:])
			sb.WriteRune(r)
			i += size
			continue
		}
		if i+1 >= len(s) {
			return "", false
		}
		switch esc := s[i+1]; esc {
		case 'n':
			sb.WriteByte('\n')
			i += 2
		case 'r':
			sb.WriteByte('\r')
			i += 2
		case 't':
			sb.WriteByte('\t')
			i += 2
		case '0':
			sb.WriteByte(0)
			i += 2
		case '\\', '\'', '"':
			sb.WriteByte(esc)
			i += 2
		case 'x':
			if i+4 > len(s) {
				return "", false
			}
			v, err := strconv.ParseUint(s[i+2:i+4], 16, 8)
			if err != nil {
				return "", false
			}
			sb.WriteByte(byte(v))
			i += 4
		case 'u':
			end := strings.IndexByte(s[i:], '}')
			if i+2 >= len(s) || s[i+2] != '{' || end < 0 {
				return "", false
			}
			hex := strings.ReplaceAll(s[i+3:i+end], "_", "")
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil || !utf8.ValidRune(rune(v)) {
				return "", false
			}
			sb.WriteRune(rune(v))
			i += end + 1
		case '\n', '\r':
			// Line continuation: skip the newline and leading whitespace.
			i += 2
			for i < len(s) && strings.ContainsRune(" \t\r\n", rune(s[i])) {
				i++
			}
		default:
			return "", false
		}
	}
	return sb.String(), true
}
