package shaderlib

import "math"

// RGB is a linear color triple in [0,1] per channel.
type RGB [3]float64

// HSV is hue in [0,1), saturation and value in [0,1].
type HSV [3]float64

// CMYK is cyan, magenta, yellow and key (black) ink coverage in [0,1].
type CMYK [4]float64

func Gray(v float64) RGB {
	return RGB{v, v, v}
}

// Hex converts 0xRRGGBB to RGB.
func Hex(h uint32) RGB {
	return RGB{
		float64((h>>16)&0xff) / 255,
		float64((h>>8)&0xff) / 255,
		float64(h&0xff) / 255,
	}
}

func (a RGB) Add(b RGB) RGB {
	return RGB{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a RGB) Mul(b RGB) RGB {
	return RGB{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func (c RGB) Scale(s float64) RGB {
	return RGB{c[0] * s, c[1] * s, c[2] * s}
}

// Mix moves a toward b by t.
func (a RGB) Mix(b RGB, t float64) RGB {
	return RGB{Mix(a[0], b[0], t), Mix(a[1], b[1], t), Mix(a[2], b[2], t)}
}

func (c RGB) Clamp01() RGB {
	return RGB{Clamp01(c[0]), Clamp01(c[1]), Clamp01(c[2])}
}

// Luma uses Rec. 601 weights.
func (c RGB) Luma() float64 {
	return c[0]*0.299 + c[1]*0.587 + c[2]*0.114
}

func RGBToHSV(c RGB) HSV {
	cMax := math.Max(c[0], math.Max(c[1], c[2]))
	cMin := math.Min(c[0], math.Min(c[1], c[2]))
	delta := cMax - cMin

	h := 0.0
	if delta > 1e-5 {
		switch cMax {
		case c[0]:
			h = math.Mod((c[1]-c[2])/delta, 6)
		case c[1]:
			h = (c[2]-c[0])/delta + 2
		default:
			h = (c[0]-c[1])/delta + 4
		}
		h /= 6
		if h < 0 {
			h++
		}
	}
	s := 0.0
	if cMax > 1e-5 {
		s = delta / cMax
	}
	return HSV{h, s, cMax}
}

func HSVToRGB(c HSV) RGB {
	h := c[0] * 6
	s, v := c[1], c[2]
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	idx := int(math.Mod(i, 6))
	if idx < 0 {
		idx += 6
	}
	switch idx {
	case 0:
		return RGB{v, t, p}
	case 1:
		return RGB{q, v, p}
	case 2:
		return RGB{p, v, t}
	case 3:
		return RGB{p, q, v}
	case 4:
		return RGB{t, p, v}
	default:
		return RGB{v, p, q}
	}
}

// RGBToCMYK converts with the usual key extraction. Pure black returns
// (0,0,0,1) instead of dividing by zero.
func RGBToCMYK(c RGB) CMYK {
	k := 1 - math.Max(c[0], math.Max(c[1], c[2]))
	if k >= 1 {
		return CMYK{0, 0, 0, 1}
	}
	invK := 1 / (1 - k)
	return CMYK{
		(1 - c[0] - k) * invK,
		(1 - c[1] - k) * invK,
		(1 - c[2] - k) * invK,
		k,
	}
}

func CMYKToRGB(c CMYK) RGB {
	invK := 1 - c[3]
	return RGB{
		(1 - c[0]) * invK,
		(1 - c[1]) * invK,
		(1 - c[2]) * invK,
	}
}
