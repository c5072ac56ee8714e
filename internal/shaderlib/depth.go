package shaderlib

// LinearizeDepth inverts a perspective window-space depth d∈[0,1] back to
// eye distance: d=0 maps to near, d=1 to far.
func LinearizeDepth(d, near, far float64) float64 {
	z := d*2 - 1
	return (2 * near * far) / (far + near - z*(far-near))
}

// EncodeDepth is the forward mapping of LinearizeDepth for an eye distance.
func EncodeDepth(dist, near, far float64) float64 {
	ndc := (far + near - 2*near*far/dist) / (far - near)
	return ndc*0.5 + 0.5
}
