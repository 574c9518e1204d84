package ics

import (
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// BaseProperty is one content line: a name, its parameters in emission order
// and an already encoded value.
type BaseProperty struct {
	IANAToken  string
	Parameters []KeyValues
	Value      string
}

type PropertyParameter interface {
	KeyValue() (string, []string)
}

type KeyValues struct {
	Key   string
	Value []string
}

func (kv *KeyValues) KeyValue() (string, []string) {
	return kv.Key, kv.Value
}

func WithCN(cn string) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterCn),
		Value: []string{cn},
	}
}

func WithRSVP(b bool) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterRsvp),
		Value: []string{strings.ToUpper(strconv.FormatBool(b))},
	}
}

func toKeyValues(params []PropertyParameter) []KeyValues {
	r := make([]KeyValues, 0, len(params))
	for _, p := range params {
		k, v := p.KeyValue()
		r = append(r, KeyValues{Key: k, Value: v})
	}
	return r
}

// Parameter returns the first value of the named parameter.
func (property *BaseProperty) Parameter(parameter Parameter) (string, bool) {
	for _, kv := range property.Parameters {
		if kv.Key == string(parameter) && len(kv.Value) > 0 {
			return kv.Value[0], true
		}
	}
	return "", false
}

func (property *BaseProperty) serialize(w io.Writer, serialConfig *SerializationConfiguration) error {
	b := &strings.Builder{}
	b.WriteString(property.IANAToken)
	for _, kv := range property.Parameters {
		b.WriteString(";")
		b.WriteString(kv.Key)
		b.WriteString("=")
		for vi, v := range kv.Value {
			if vi > 0 {
				b.WriteString(",")
			}
			b.WriteString(quoteParameterValue(v))
		}
	}
	b.WriteString(":")
	b.WriteString(property.Value)
	_, err := io.WriteString(w, foldLine(b.String(), serialConfig.MaxLength, serialConfig.NewLine)+serialConfig.NewLine)
	return err
}

// quoteParameterValue applies the param-value grammar of RFC 5545 section 3.2:
// DQUOTE and control characters cannot be represented at all, and values
// containing ";", ":" or "," must be a quoted-string.
func quoteParameterValue(v string) string {
	v = strings.Map(func(r rune) rune {
		if r == '"' || (unicode.IsControl(r) && r != '\t') {
			return -1
		}
		return r
	}, v)
	if strings.ContainsAny(v, ";:,") {
		return `"` + v + `"`
	}
	return v
}

// foldLine splits a content line longer than maxLength octets into a first
// line plus continuation lines that start with a single space, never cutting a
// UTF-8 sequence in half.
func foldLine(s string, maxLength int, newLine string) string {
	if maxLength <= 1 || len(s) <= maxLength {
		return s
	}
	b := &strings.Builder{}
	limit := maxLength
	for len(s) > limit {
		n := utf8PrefixLength(limit, s)
		b.WriteString(s[:n])
		b.WriteString(newLine)
		b.WriteString(" ")
		s = s[n:]
		// the leading space counts towards the continuation line
		limit = maxLength - 1
	}
	b.WriteString(s)
	return b.String()
}

func utf8PrefixLength(maxLength int, s string) int {
	length := 0
	for length < len(s) {
		_, size := utf8.DecodeRuneInString(s[length:])
		if length+size > maxLength {
			break
		}
		length += size
	}
	if length == 0 {
		_, size := utf8.DecodeRuneInString(s)
		return size
	}
	return length
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\n`,
)

// EscapeText encodes s as an RFC 5545 TEXT value (section 3.3.11).  The
// replacement is a single pass over s, so the backslashes it introduces are
// never escaped a second time.
func EscapeText(s string) string {
	if s == "" {
		return ""
	}
	return textEscaper.Replace(s)
}

var textUnescaper = strings.NewReplacer(
	`\\`, `\`,
	`\n`, "\n",
	`\N`, "\n",
	`\;`, `;`,
	`\,`, `,`,
)

// UnescapeText reverses EscapeText.
func UnescapeText(s string) string {
	return textUnescaper.Replace(s)
}
