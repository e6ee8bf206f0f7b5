package qr

import (
	"image"
	"math"
)

// Shapes are filled by testing each pixel center against the shape, so the
// output has hard edges and no antialiasing. Rectangles are half-open.

func fillRect(img *image.RGBA, r image.Rectangle, c Color) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	rgba := c.toRGBA()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Pix[i+0] = rgba.R
			img.Pix[i+1] = rgba.G
			img.Pix[i+2] = rgba.B
			img.Pix[i+3] = rgba.A
			i += 4
		}
	}
}

func fillFunc(img *image.RGBA, r image.Rectangle, c Color, inside func(fx, fy float64) bool) {
	clip := r.Intersect(img.Bounds())
	if clip.Empty() {
		return
	}
	rgba := c.toRGBA()
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		fy := float64(y) + 0.5
		for x := clip.Min.X; x < clip.Max.X; x++ {
			if inside(float64(x)+0.5, fy) {
				img.SetRGBA(x, y, rgba)
			}
		}
	}
}

func fillEllipse(img *image.RGBA, r image.Rectangle, c Color) {
	if r.Empty() {
		return
	}
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2
	fillFunc(img, r, c, func(fx, fy float64) bool {
		dx := (fx - cx) / rx
		dy := (fy - cy) / ry
		return dx*dx+dy*dy <= 1
	})
}

func fillRoundedRect(img *image.RGBA, r image.Rectangle, radius int, c Color) {
	if r.Empty() {
		return
	}
	rad := float64(radius)
	if half := float64(min(r.Dx(), r.Dy())) / 2; rad > half {
		rad = half
	}
	if rad <= 0 {
		fillRect(img, r, c)
		return
	}
	fillFunc(img, r, c, func(fx, fy float64) bool {
		return insideRoundedRect(fx, fy, r, rad)
	})
}

// insideRoundedRect reports whether (x, y) lies within r with corners of
// the given radius.
func insideRoundedRect(x, y float64, r image.Rectangle, radius float64) bool {
	left, top := float64(r.Min.X), float64(r.Min.Y)
	right, bottom := float64(r.Max.X), float64(r.Max.Y)
	if x < left || x > right || y < top || y > bottom {
		return false
	}
	// Straight bands
	if x >= left+radius && x <= right-radius {
		return true
	}
	if y >= top+radius && y <= bottom-radius {
		return true
	}
	// Corner circles
	cx := math.Max(left+radius, math.Min(x, right-radius))
	cy := math.Max(top+radius, math.Min(y, bottom-radius))
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= radius*radius
}
