package syntax

import (
	"strings"

	"github.com/ja-he/wardmap/internal/model"
)

// Decoded is the result of decoding a raw name field.
type Decoded struct {
	Value  string
	Quoted bool

	// Issues lists the anomalies met while decoding, in order of occurrence,
	// without duplicates.
	Issues []model.Reason
}

// Recovered tells whether decoding had to work around malformed input.
func (d Decoded) Recovered() bool { return len(d.Issues) > 0 }

func (d *Decoded) addIssue(r model.Reason) {
	for _, existing := range d.Issues {
		if existing == r {
			return
		}
	}
	d.Issues = append(d.Issues, r)
}

// DecodeQuoted decodes a raw name field.
//
// Bare fields are returned trimmed and otherwise verbatim. Quoted fields have
// the escapes \\, \", \n and \r resolved; any other escape loses its
// backslash and reports model.ReasonInvalidEscape. A quote that is never
// closed yields everything after it and reports
// model.ReasonUnterminatedQuote. DecodeQuoted never fails.
func DecodeQuoted(raw string) Decoded {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, `"`) {
		return Decoded{Value: raw}
	}

	result := Decoded{Quoted: true}
	var b strings.Builder
	terminated := false

scan:
	for i := 1; i < len(raw); i++ {
		c := raw[i]
		switch c {
		case '\\':
			if i+1 >= len(raw) {
				result.addIssue(model.ReasonInvalidEscape)
				break scan
			}
			i++
			switch raw[i] {
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			default:
				result.addIssue(model.ReasonInvalidEscape)
				b.WriteByte(raw[i])
			}
		case '"':
			terminated = true
			break scan
		default:
			b.WriteByte(c)
		}
	}

	if !terminated {
		result.addIssue(model.ReasonUnterminatedQuote)
	}
	result.Value = b.String()
	return result
}

// needsQuoting lists what a bare name must not contain to survive a
// re-parse.
const needsQuoting = "\"\\\n\r[](){}"

// EncodeName renders a name for a statement line: verbatim when that
// re-parses to the same name, double-quoted with escapes otherwise.
func EncodeName(name string) string {
	if bareSafe(name) {
		return name
	}
	return Quote(name)
}

// EncodeEndpoint renders a name for use as a link endpoint, where link
// operators and flow value separators must be quoted as well.
func EncodeEndpoint(name string) string {
	if bareSafe(name) && !strings.Contains(name, "->") && !strings.Contains(name, "<-") &&
		!strings.ContainsAny(name, ":;") {
		return name
	}
	return Quote(name)
}

// Quote renders a name as a double-quoted string with escapes.
func Quote(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 2)
	b.WriteByte('"')
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(name[i])
		}
	}
	b.WriteByte('"')
	return b.String()
}

func bareSafe(name string) bool {
	if name == "" || strings.TrimSpace(name) != name {
		return false
	}
	if strings.HasPrefix(name, "//") {
		return false
	}
	return !strings.ContainsAny(name, needsQuoting)
}
