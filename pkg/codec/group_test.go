package codec

import (
	"testing"

	"github.com/ssargent/deckcode/pkg/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parsed(t *testing.T, codes ...string) []parsedToken {
	t.Helper()
	tokens := make([]parsedToken, 0, len(codes))
	for _, code := range codes {
		card, err := ParseCardCode(code)
		require.NoError(t, err)
		tokens = append(tokens, parsedToken{Token: deck.Token{Code: code, Count: 1}, card: card})
	}
	return tokens
}

func groupCodes(groups []cardGroup) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		for _, t := range g {
			out[i] = append(out[i], t.Code)
		}
	}
	return out
}

func TestGroupBySetRegion(t *testing.T) {
	groups := groupBySetRegion(parsed(t, "01FR002", "01DE004", "02DE001", "01FR001", "01DE003"))

	assert.Equal(t, [][]string{
		{"01FR002", "01FR001"},
		{"01DE004", "01DE003"},
		{"02DE001"},
	}, groupCodes(groups))
}

func TestGroupBySetRegion_Empty(t *testing.T) {
	assert.Empty(t, groupBySetRegion(nil))
}

func TestSortGroups(t *testing.T) {
	t.Run("by size", func(t *testing.T) {
		groups := groupBySetRegion(parsed(t, "01NX001", "01NX004", "01NX002", "01DE001", "01FR047", "01FR041"))
		sortGroups(groups)

		assert.Equal(t, [][]string{
			{"01DE001"},
			{"01FR041", "01FR047"},
			{"01NX001", "01NX002", "01NX004"},
		}, groupCodes(groups))
	})

	t.Run("ties broken by smallest code", func(t *testing.T) {
		// 01FR002 is not the first FR card seen, so the group must be
		// sorted before comparing.
		groups := groupBySetRegion(parsed(t, "01FR009", "01DE005", "01FR002", "01DE003"))
		sortGroups(groups)

		assert.Equal(t, [][]string{
			{"01DE003", "01DE005"},
			{"01FR002", "01FR009"},
		}, groupCodes(groups))
	})

	t.Run("set compares before region", func(t *testing.T) {
		groups := groupBySetRegion(parsed(t, "02BW001", "01SI001"))
		sortGroups(groups)

		assert.Equal(t, [][]string{{"01SI001"}, {"02BW001"}}, groupCodes(groups))
	})
}
