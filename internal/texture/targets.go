package texture

import (
	"fmt"

	"comic-lens-renderer/internal/raster"
)

// LoadTargets reads externally rendered color, normal and depth images into
// render targets. All three must share one size.
func LoadTargets(colorPath, normalPath, depthPath string) (*raster.RenderTargets, error) {
	col, err := Load(colorPath)
	if err != nil {
		return nil, err
	}
	normal, err := Load(normalPath)
	if err != nil {
		return nil, err
	}
	depth, err := Load(depthPath)
	if err != nil {
		return nil, err
	}
	t, err := raster.FromImages(col, normal, depth)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	return t, nil
}
