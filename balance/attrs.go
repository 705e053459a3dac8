package balance

import "strings"

// attrValue extracts the value of name from a canonical attribute string
// of the form (" " NAME "=" '"' VALUE '"')* (§6 strict-mode contract). It
// is a small linear scanner rather than a full parser: by construction
// (§6) the string is already well-formed, double-quoted, and free of
// literal quote characters inside values (the attribute-normalization
// hook is responsible for that), so a split on `" "` boundaries ahead of
// `=` is sufficient.
func attrValue(attrs, name string) string {
	rest := attrs
	for {
		rest = strings.TrimLeft(rest, " ")
		if rest == "" {
			return ""
		}
		eq := strings.IndexByte(rest, '=')
		if eq == -1 {
			return ""
		}
		key := rest[:eq]
		rest = rest[eq+1:]
		if len(rest) == 0 || rest[0] != '"' {
			return ""
		}
		rest = rest[1:]
		end := strings.IndexByte(rest, '"')
		if end == -1 {
			return ""
		}
		val := rest[:end]
		rest = rest[end+1:]
		if key == name {
			return val
		}
	}
}

// hasAnyAttr reports whether attrs defines any of names.
func hasAnyAttr(attrs string, names ...string) bool {
	for _, name := range names {
		if attrValue(attrs, name) != "" {
			return true
		}
		// attrValue returns "" both for "absent" and for "present with
		// empty value"; fall back to a direct key scan for the latter.
		if hasAttrKey(attrs, name) {
			return true
		}
	}
	return false
}

func hasAttrKey(attrs, name string) bool {
	rest := attrs
	for {
		rest = strings.TrimLeft(rest, " ")
		if rest == "" {
			return false
		}
		eq := strings.IndexByte(rest, '=')
		if eq == -1 {
			return false
		}
		key := rest[:eq]
		rest = rest[eq+1:]
		if len(rest) == 0 || rest[0] != '"' {
			return false
		}
		rest = rest[1:]
		end := strings.IndexByte(rest, '"')
		if end == -1 {
			return false
		}
		if key == name {
			return true
		}
		rest = rest[end+1:]
	}
}
