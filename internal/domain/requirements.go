package domain

// LegacyBlendRatio is one entry of the fixed composition table the original
// bookkeeping used before per-blend components existed. It is only consulted
// when LEGACY_BLEND_RATIOS is enabled and names single-origin materials by
// their Korean trade names.
type LegacyBlendRatio struct {
	Name  string
	Ratio float64
}

// LegacyBlendRatios is the historical four-origin split for every blend.
func LegacyBlendRatios() []LegacyBlendRatio {
	return []LegacyBlendRatio{
		{Name: "브라질", Ratio: 0.55},
		{Name: "콜롬비아", Ratio: 0.20},
		{Name: "과테말라", Ratio: 0.15},
		{Name: "시다모", Ratio: 0.10},
	}
}

// Yield holds the processing multipliers applied when an order of a finished
// good is expanded into raw-material draws.
type Yield struct {
	Blend        float64 // raw kg needed per kg of blended output
	SingleOrigin float64 // roasting shrinkage for single origins
}

// ExpandRequirements computes how much of which raw materials an order
// consumes. Blends multiply the ordered quantity by the blend yield and split
// it across the given components by ratio; single origins apply the roast
// shrinkage; everything else passes through 1:1. The yield lives here, not in
// the per-kg cost.
func ExpandRequirements(m *Material, components []BlendComponent, quantity float64, y Yield) ([]MaterialRequirement, error) {
	switch m.Type {
	case MaterialBlend:
		if len(components) == 0 {
			return nil, Validationf("blend %q has no components", m.Name)
		}
		totalRequired := quantity * y.Blend
		reqs := make([]MaterialRequirement, 0, len(components))
		for _, c := range components {
			reqs = append(reqs, MaterialRequirement{
				MaterialID: c.ComponentID,
				Quantity:   totalRequired * c.Ratio,
			})
		}
		return reqs, nil

	case MaterialSingleOrigin:
		return []MaterialRequirement{{MaterialID: m.ID, Quantity: quantity * y.SingleOrigin}}, nil

	default:
		return []MaterialRequirement{{MaterialID: m.ID, Quantity: quantity}}, nil
	}
}
