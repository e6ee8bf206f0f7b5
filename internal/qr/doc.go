// Package qr renders stylized QR codes.
//
// Rendering is a small pipeline of pure steps:
//
//	grid, err := qr.BuildGrid("https://example.com", qr.DefaultMatrixOptions())
//	if err != nil {
//		return err
//	}
//	opts := qr.DefaultRenderOptions()
//	opts.Style = qr.StyleBarsHorizontal
//	opts.Gradient = qr.GradientRainbow
//	img, err := qr.Render(grid, opts)
//	if err != nil {
//		return err
//	}
//	frame := qr.DefaultFrameOptions()
//	frame.Label = "Example"
//	img, err = qr.Frame(img, frame)
//
// BuildGrid delegates symbol construction to an external encoder and only adds
// the quiet zone. Render draws one shape per dark module, or one bar per run of
// dark modules for the bar styles. Frame wraps the result in a bordered card
// with an optional text label.
//
// Every call allocates its own grid and buffers, so concurrent renders never
// share state. Output is deterministic for identical inputs.
package qr
