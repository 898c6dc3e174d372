package codec

import (
	"cmp"
	"slices"
	"strings"

	"github.com/ssargent/deckcode/pkg/deck"
)

// parsedToken is a token whose code has been split into its fields.
type parsedToken struct {
	deck.Token
	card deck.CardCode
}

type setRegion struct {
	set    int
	region deck.Region
}

// cardGroup holds tokens of one count class sharing set and region.
type cardGroup []parsedToken

// groupBySetRegion partitions tokens by (set, region). Groups come out in
// first-seen order; sortGroups makes the order canonical.
func groupBySetRegion(tokens []parsedToken) []cardGroup {
	var groups []cardGroup
	index := make(map[setRegion]int)

	for _, t := range tokens {
		key := setRegion{set: t.card.Set, region: t.card.Region}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], t)
	}
	return groups
}

// sortGroups sorts the tokens of every group by code, then sorts the groups
// by size, breaking ties on the group's smallest code. Sorting inside the
// groups first keeps the tie-break independent of input order.
func sortGroups(groups []cardGroup) {
	for _, g := range groups {
		sortByCode(g)
	}
	slices.SortStableFunc(groups, func(a, b cardGroup) int {
		if c := cmp.Compare(len(a), len(b)); c != 0 {
			return c
		}
		return strings.Compare(a[0].Code, b[0].Code)
	})
}

func sortByCode(tokens []parsedToken) {
	slices.SortStableFunc(tokens, func(a, b parsedToken) int {
		return strings.Compare(a.Code, b.Code)
	})
}
