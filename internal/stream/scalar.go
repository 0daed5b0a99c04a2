package stream

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// appendValue renders a typed field value for a key at column col. Strings
// go through the scalar rules; everything else has an unambiguous plain form.
func (s *Serializer) appendValue(buf *bytes.Buffer, value any, col int) {
	switch v := value.(type) {
	case string:
		s.appendString(buf, v, col)
	case bool:
		writePlain(buf, strconv.FormatBool(v))
	case int:
		writePlain(buf, strconv.FormatInt(int64(v), 10))
	case int32:
		writePlain(buf, strconv.FormatInt(int64(v), 10))
	case int64:
		writePlain(buf, strconv.FormatInt(v, 10))
	case uint:
		writePlain(buf, strconv.FormatUint(uint64(v), 10))
	case uint32:
		writePlain(buf, strconv.FormatUint(uint64(v), 10))
	case uint64:
		writePlain(buf, strconv.FormatUint(v, 10))
	case float32:
		writePlain(buf, strconv.FormatFloat(float64(v), 'f', -1, 32))
	case float64:
		writePlain(buf, strconv.FormatFloat(v, 'f', -1, 64))
	case time.Duration:
		s.appendString(buf, v.String(), col)
	case time.Time:
		writePlain(buf, v.UTC().Format(tsLayout))
	case error:
		s.appendString(buf, v.Error(), col)
	case fmt.Stringer:
		s.appendString(buf, v.String(), col)
	case nil:
		writePlain(buf, "~")
	default:
		s.appendString(buf, fmt.Sprint(v), col)
	}
}

func writePlain(buf *bytes.Buffer, value string) {
	buf.WriteByte(' ')
	buf.WriteString(value)
	buf.WriteByte('\n')
}

// literalSafe reports whether a string can be emitted as a block literal
// without an explicit indentation indicator and round-trip exactly. The
// conservative cases — a first non-empty line starting with whitespace,
// control characters, or a string of nothing but newlines — fall back to a
// quoted scalar instead.
func literalSafe(s string) bool {
	if !strings.Contains(s, "\n") {
		return false
	}
	sawContent := false
	for _, line := range strings.Split(s, "\n") {
		for _, r := range line {
			if r == '\t' {
				continue
			}
			if r < 0x20 || r == 0x7f {
				return false
			}
		}
		if !sawContent && line != "" {
			if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
				// Leading whitespace would confuse the parser's
				// indentation detection.
				return false
			}
			sawContent = true
		}
	}
	return sawContent
}

// literalParts picks the chomping indicator that reproduces the string's
// trailing newlines exactly and splits the body into lines.
func literalParts(s string) (header string, lines []string) {
	trailing := len(s) - len(strings.TrimRight(s, "\n"))
	switch trailing {
	case 0:
		return "|-", strings.Split(s, "\n")
	case 1:
		return "|", strings.Split(s[:len(s)-1], "\n")
	default:
		// Keep chomping preserves every trailing newline; the final line
		// break is supplied by the last written line.
		return "|+", strings.Split(s[:len(s)-1], "\n")
	}
}

// quoteIfNeeded returns the string as a plain scalar when unambiguous, or
// double-quoted otherwise. strconv quoting emits only escapes that YAML's
// double-quoted style also accepts.
func quoteIfNeeded(s string) string {
	if plainSafe(s) {
		return s
	}
	return strconv.Quote(s)
}

// plainSafe reports whether a single-line string survives as a plain block
// scalar: no indicator characters up front, no mapping/comment ambiguity,
// and no value that a parser would resolve to something other than a string.
func plainSafe(s string) bool {
	if s == "" {
		return false
	}
	if s != strings.TrimSpace(s) {
		return false
	}
	if strings.ContainsAny(s[:1], "-?:,[]{}#&*!|>'\"%@`") {
		return false
	}
	if strings.Contains(s, ": ") || strings.Contains(s, " #") {
		return false
	}
	if strings.HasSuffix(s, ":") {
		return false
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return !resolvesNonString(s)
}

// resolvesNonString reports whether a YAML parser would read the plain
// scalar as a bool, null, or number. Such strings must be quoted to keep
// their type on the way back in.
func resolvesNonString(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false", "yes", "no", "on", "off", "null", "~",
		".inf", "-.inf", "+.inf", ".nan":
		return true
	}
	if _, err := strconv.ParseInt(s, 0, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	return false
}

// quoteKey keeps identifier-like keys plain and quotes everything else.
func quoteKey(key string) string {
	if keyPlain(key) {
		return key
	}
	return strconv.Quote(key)
}

func keyPlain(key string) bool {
	if key == "" {
		return false
	}
	for i, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case i > 0 && (r >= '0' && r <= '9' || r == '.' || r == '-'):
		default:
			return false
		}
	}
	return true
}

// sanitizeLabel flattens a scope label to a single line; labels are names,
// not payloads.
func sanitizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}
