package task

import "regexp"

// ialPairRe matches one key="value" pair inside an inline attribute list.
// Values are taken verbatim between the quotes; embedded quotes are not
// escapable, which is a limitation of the format itself.
var ialPairRe = regexp.MustCompile(`([\w-]+)="([^"]*)"`)

// ParseIAL extracts custom attributes from an inline attribute list string
// of the form `{: key1="value1" key2="value2"}`. An empty input yields an
// empty map.
func ParseIAL(ial string) map[string]string {
	attrs := make(map[string]string)
	if ial == "" {
		return attrs
	}
	for _, m := range ialPairRe.FindAllStringSubmatch(ial, -1) {
		attrs[m[1]] = m[2]
	}
	return attrs
}
