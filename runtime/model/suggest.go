package model

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// domainSectionKeywords are the section heads recognized at domain level.
var domainSectionKeywords = []string{
	":requirements",
	":types",
	":constants",
	":predicates",
	":functions",
	":derived",
	":action",
	":durative-action",
	":process",
	":event",
	":constraints",
}

// problemSectionKeywords are the section heads recognized at problem level.
var problemSectionKeywords = []string{
	":requirements",
	":domain",
	":objects",
	":init",
	":goal",
	":metric",
	":constraints",
}

// Warning is a non-fatal finding surfaced during model extraction, such as
// a misspelled section keyword.
type Warning struct {
	Message    string
	Suggestion string
	Range      Range
}

// closestSection finds the closest known section keyword using fuzzy
// matching. Empty when nothing ranks.
func closestSection(target string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
