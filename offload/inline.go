package offload

import "regexp"

var inlineIDPattern = regexp.MustCompile(`^(?P<handle>.+)-js-(?:before|after)$`)

// FilterInlineScriptAttributes sets type="text/partytown" on the inline
// before/after block of an offloaded handle.
func FilterInlineScriptAttributes(reg WorkerLookup, attrs map[string]string) map[string]string {
	if attrs == nil {
		return map[string]string{}
	}
	m := inlineIDPattern.FindStringSubmatch(attrs["id"])
	if m == nil {
		return attrs
	}
	if reg.Worker(m[inlineIDPattern.SubexpIndex("handle")]) {
		attrs["type"] = ScriptType
	}
	return attrs
}
