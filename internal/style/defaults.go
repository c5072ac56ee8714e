package style

// Raw is the startup state: every stage off, neutral color controls.
func Raw() Params {
	return Params{
		OutlineThickness:  0,
		OutlineThreshold:  0.35,
		OutlineVariation:  0,
		CelBands:          4,
		SpecularPop:       0,
		RimStrength:       0,
		RimThreshold:      0.65,
		HalftoneSize:      5,
		HalftoneAngle:     0.52,
		HalftoneIntensity: 0,
		SaturationBoost:   0,
		ColorPunch:        0,
		WobbleAmount:      0,
		WobbleFreq:        12,
		CmykOffset:        0,
		PaperStrength:     0,
	}
}

// DefaultMain matches the "Comic Book" look.
func DefaultMain() Params {
	return Params{
		OutlineThickness:  1.2,
		OutlineThreshold:  0.45,
		OutlineVariation:  0.8,
		CelBands:          4,
		SpecularPop:       0.7,
		RimStrength:       0.3,
		RimThreshold:      0.65,
		HalftoneSize:      5,
		HalftoneAngle:     0.52,
		HalftoneIntensity: 0.7,
		SaturationBoost:   0.4,
		ColorPunch:        0.4,
		WobbleAmount:      2,
		WobbleFreq:        12,
		CmykOffset:        2.5,
		PaperStrength:     0.4,
		EnableOutlines:    1,
		EnableCelShading:  1,
		EnableHalftone:    1,
		EnableWobble:      1,
		EnableCmyk:        1,
		EnablePaper:       1,
	}
}

// DefaultLens matches "Noir", the contrast partner of the default look.
func DefaultLens() Params {
	return Params{
		OutlineThickness:  1.5,
		OutlineThreshold:  0.3,
		OutlineVariation:  1,
		CelBands:          3,
		SpecularPop:       0.5,
		RimStrength:       0.6,
		RimThreshold:      0.55,
		HalftoneSize:      4,
		HalftoneAngle:     0.78,
		HalftoneIntensity: 0.4,
		SaturationBoost:   -0.85,
		ColorPunch:        0,
		WobbleAmount:      3,
		WobbleFreq:        8,
		CmykOffset:        0,
		PaperStrength:     0.6,
		EnableOutlines:    1,
		EnableCelShading:  1,
		EnableHalftone:    1,
		EnableWobble:      1,
		EnableCmyk:        0,
		EnablePaper:       1,
	}
}
