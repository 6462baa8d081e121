package survey

import "strings"

// classifyRules maps name prefixes to groups. Order matters: the first
// matching rule wins. Each prefix includes the trailing dot of the
// "T<transect>.<plot>" convention, so "T10.1" does not land in Transect 1
// by accident (a bare "T1" prefix check would take it).
var classifyRules = []struct {
	prefix string
	group  Group
}{
	{"T1.", GroupTransect1},
	{"T2.", GroupTransect2},
	{"T3.", GroupTransect3},
}

// Classify derives the transect group from a waypoint name. Names matching
// no rule return GroupUnassigned.
func Classify(name string) Group {
	for _, rule := range classifyRules {
		if strings.HasPrefix(name, rule.prefix) {
			return rule.group
		}
	}
	return GroupUnassigned
}
