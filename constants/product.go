package constants

type ProductType string

const (
	Gas   ProductType = "GAS"
	Oil   ProductType = "OIL"
	NGL   ProductType = "NGL"
	Water ProductType = "WATER"
)

// ProductProfile is the fixed accounting tuple attached to a product type.
type ProductProfile struct {
	Type              ProductType
	Unit              string
	BTUFactor         float64
	BaseOwnerInterest float64
	Keywords          []string
}

// productProfiles is ordered by match priority.
var productProfiles = []ProductProfile{
	{Type: Gas, Unit: "MCF", BTUFactor: 1.035, BaseOwnerInterest: 0.1875, Keywords: []string{"gas", "natural gas", "methane"}},
	{Type: Oil, Unit: "BBL", BTUFactor: 1.0, BaseOwnerInterest: 0.125, Keywords: []string{"oil", "crude", "petroleum"}},
	{Type: NGL, Unit: "GAL", BTUFactor: 1.0, BaseOwnerInterest: 0.15625, Keywords: []string{"ngl", "liquid", "condensate", "propane", "butane"}},
	{Type: Water, Unit: "BBL", BTUFactor: 1.0, BaseOwnerInterest: 0.10, Keywords: []string{"water", "brine", "disposal"}},
}

// ProductProfiles returns the profiles in match priority order.
func ProductProfiles() []ProductProfile {
	out := make([]ProductProfile, len(productProfiles))
	copy(out, productProfiles)
	return out
}

// ProfileFor returns the profile for t, falling back to OIL.
func ProfileFor(t ProductType) ProductProfile {
	for _, p := range productProfiles {
		if p.Type == t {
			return p
		}
	}
	return productProfiles[1]
}

