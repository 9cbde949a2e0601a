package offload

import (
	"strings"

	gohtml "golang.org/x/net/html"
)

// UpdateScriptType marks the <script id="{handle}-js"> element of an
// offloaded handle with type="text/partytown". Only that start tag changes;
// the rest of the markup is returned byte for byte. Tags of handles that are
// not offloaded, and fragments without the element, are returned unchanged.
func UpdateScriptType(reg WorkerLookup, tag, handle string) string {
	if !reg.Worker(handle) {
		return tag
	}
	want := handle + "-js"

	z := gohtml.NewTokenizer(strings.NewReader(tag))
	offset := 0
	for {
		tt := z.Next()
		if tt == gohtml.ErrorToken {
			return tag
		}
		// Raw is only valid until the next tokenizer call; TagName lowers it in place.
		raw := string(z.Raw())
		start := offset
		offset += len(raw)
		if tt != gohtml.StartTagToken && tt != gohtml.SelfClosingTagToken {
			continue
		}
		name, hasAttr := z.TagName()
		if string(name) != "script" || !hasAttr {
			continue
		}

		var id, typ string
		var seenID, seenType bool
		for more := true; more; {
			var key, val []byte
			key, val, more = z.TagAttr()
			switch string(key) {
			case "id":
				if !seenID {
					id, seenID = string(val), true
				}
			case "type":
				if !seenType {
					typ, seenType = string(val), true
				}
			}
		}
		if id != want {
			continue
		}
		if seenType && typ == ScriptType {
			return tag
		}
		if offset > len(tag) || tag[start:offset] != raw {
			return tag
		}
		return tag[:start] + setTypeAttribute(raw) + tag[offset:]
	}
}

// setTypeAttribute rewrites the first type attribute of a raw <script> start
// tag, or inserts one right after the tag name.
func setTypeAttribute(raw string) string {
	const attr = `type="` + ScriptType + `"`
	nameEnd := len("<script")
	n := len(raw)
	i := nameEnd
	for i < n {
		for i < n && (isSpace(raw[i]) || raw[i] == '/') {
			i++
		}
		if i >= n || raw[i] == '>' {
			break
		}
		attrStart := i
		for i < n && !isSpace(raw[i]) && raw[i] != '=' && raw[i] != '>' && raw[i] != '/' {
			i++
		}
		if i == attrStart {
			// a stray '=' where a name should be
			i++
			continue
		}
		attrName := strings.ToLower(raw[attrStart:i])
		valueless := i

		j := i
		for j < n && isSpace(raw[j]) {
			j++
		}
		if j >= n || raw[j] != '=' {
			if attrName == "type" {
				return raw[:attrStart] + attr + raw[valueless:]
			}
			continue
		}
		i = j + 1
		for i < n && isSpace(raw[i]) {
			i++
		}
		if i < n && (raw[i] == '"' || raw[i] == '\'') {
			q := raw[i]
			i++
			for i < n && raw[i] != q {
				i++
			}
			if i < n {
				i++
			}
		} else {
			for i < n && !isSpace(raw[i]) && raw[i] != '>' {
				i++
			}
		}
		if attrName == "type" {
			return raw[:attrStart] + attr + raw[i:]
		}
	}
	return raw[:nameEnd] + " " + attr + raw[nameEnd:]
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
