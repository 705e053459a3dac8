package balance

import (
	"regexp"
	"sort"
	"strings"
)

// attrPairPattern recognizes one name[=value] pair inside a raw attribute
// fragment, accepting unquoted, single-, or double-quoted values so the
// default normalizer can accept whatever loose syntax a host's
// processingCallback hands back.
var attrPairPattern = regexp.MustCompile(`([^\s=/"']+)(?:\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s]+)))?`)

// DefaultAttrNormalizer canonicalizes a raw attribute fragment into the
// sorted, double-quoted form §1 and §4.6 require: duplicate names keep
// their first occurrence (matching HTML5 tokenization's own duplicate-
// attribute rule), and the result is either empty or starts with a
// leading space.
func DefaultAttrNormalizer(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	order := make([]string, 0, 4)
	seen := make(map[string]string, 4)
	for _, m := range attrPairPattern.FindAllStringSubmatch(raw, -1) {
		name := strings.ToLower(m[1])
		if _, ok := seen[name]; ok {
			continue
		}
		value := m[2]
		if value == "" {
			value = m[3]
		}
		if value == "" {
			value = m[4]
		}
		seen[name] = escapeAttrValue(value)
		order = append(order, name)
	}

	sort.Strings(order)
	var b strings.Builder
	for _, name := range order {
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(seen[name])
		b.WriteByte('"')
	}
	return b.String()
}

// entityRefPattern recognizes a character reference already terminated
// by ';' (named, decimal, or hex), per the input contract (§6 (d):
// "attribute values are ... entity-escaped"): escaping '&' unconditionally
// would double-escape an already-escaped value and break idempotence
// (§6 Output contract) on a second balance pass.
var entityRefPattern = regexp.MustCompile(`^&(?:[a-zA-Z][a-zA-Z0-9]*|#[0-9]+|#[xX][0-9a-fA-F]+);`)

func escapeAttrValue(v string) string {
	v = escapeBareAmpersands(v)
	v = strings.ReplaceAll(v, "\"", "&quot;")
	return v
}

// escapeBareAmpersands escapes '&' unless it already begins a
// recognized character reference, so already-escaped values pass
// through unchanged.
func escapeBareAmpersands(v string) string {
	var b strings.Builder
	for i := 0; i < len(v); {
		if v[i] != '&' {
			b.WriteByte(v[i])
			i++
			continue
		}
		if loc := entityRefPattern.FindStringIndex(v[i:]); loc != nil {
			b.WriteString(v[i : i+loc[1]])
			i += loc[1]
			continue
		}
		b.WriteString("&amp;")
		i++
	}
	return b.String()
}
