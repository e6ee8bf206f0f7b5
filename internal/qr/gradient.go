package qr

// Resolve returns the fill color for a shape centered at pixel (x, y) of a
// width × height buffer.
func Resolve(x, y, width, height int, o RenderOptions) Color {
	switch o.Gradient {
	case GradientNone:
		return o.Foreground
	case GradientRainbow:
		return hsv(ratio(x+y, width+height), 1.0, 0.95)
	}

	if o.Gradient2 == nil {
		return o.Foreground
	}

	var t float64
	switch o.Gradient {
	case GradientHorizontal:
		t = ratio(x, width)
	case GradientVertical:
		t = ratio(y, height)
	case GradientDiagonal:
		t = ratio(x+y, width+height)
	}
	return LerpColor(o.Foreground, *o.Gradient2, t)
}

// ResolveNormalized is Resolve for coordinates given as fractions of the
// buffer size, u = x/width and v = y/height.
func ResolveNormalized(u, v float64, o RenderOptions) Color {
	const scale = 1 << 16
	return Resolve(int(u*scale), int(v*scale), scale, scale, o)
}

func ratio(n, d int) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / float64(d)
}
