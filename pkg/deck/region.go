package deck

import "fmt"

// Region is a card faction. Each region has a two-letter code used in card
// codes and a numeric id used on the wire.
type Region uint8

// Known regions.
const (
	Demacia Region = iota
	Freljord
	Ionia
	Noxus
	PiltoverZaun
	ShadowIsles
	Bilgewater
	Shurima
	Targon
)

type regionInfo struct {
	code string
	name string
	id   uint64
}

// Wire ids are not contiguous: Targon is 9, not 8. Existing deck codes rely
// on it, so the table must not be renumbered.
var regions = [...]regionInfo{
	Demacia:      {code: "DE", name: "Demacia", id: 0},
	Freljord:     {code: "FR", name: "Freljord", id: 1},
	Ionia:        {code: "IO", name: "Ionia", id: 2},
	Noxus:        {code: "NX", name: "Noxus", id: 3},
	PiltoverZaun: {code: "PZ", name: "Piltover & Zaun", id: 4},
	ShadowIsles:  {code: "SI", name: "Shadow Isles", id: 5},
	Bilgewater:   {code: "BW", name: "Bilgewater", id: 6},
	Shurima:      {code: "SH", name: "Shurima", id: 7},
	Targon:       {code: "MT", name: "Targon", id: 9},
}

var (
	regionsByCode = make(map[string]Region, len(regions))
	regionsByID   = make(map[uint64]Region, len(regions))
)

func init() {
	for i, info := range regions {
		regionsByCode[info.code] = Region(i)
		regionsByID[info.id] = Region(i)
	}
}

// Regions returns every known region in declaration order.
func Regions() []Region {
	out := make([]Region, len(regions))
	for i := range regions {
		out[i] = Region(i)
	}
	return out
}

// ParseRegion looks up a region by its two-letter code. Codes are
// case-sensitive.
func ParseRegion(code string) (Region, bool) {
	r, ok := regionsByCode[code]
	return r, ok
}

// RegionFromID looks up a region by its wire id.
func RegionFromID(id uint64) (Region, bool) {
	r, ok := regionsByID[id]
	return r, ok
}

// Valid reports whether r is a known region.
func (r Region) Valid() bool {
	return int(r) < len(regions)
}

// String returns the two-letter code.
func (r Region) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Region(%d)", uint8(r))
	}
	return regions[r].code
}

// Name returns the display name.
func (r Region) Name() string {
	if !r.Valid() {
		return r.String()
	}
	return regions[r].name
}

// ID returns the wire id. It panics for an unknown region.
func (r Region) ID() uint64 {
	return regions[r].id
}

// MarshalText encodes the region as its two-letter code.
func (r Region) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("deck: cannot marshal unknown region %d", uint8(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText decodes a two-letter region code.
func (r *Region) UnmarshalText(text []byte) error {
	parsed, ok := ParseRegion(string(text))
	if !ok {
		return fmt.Errorf("deck: unknown region %q", text)
	}
	*r = parsed
	return nil
}
