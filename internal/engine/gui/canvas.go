package gui

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Canvas describes a procedurally drawn element surface: a background
// fill, an optional border and an optional line of centered text.
type Canvas struct {
	Background color.RGBA
	Border     *Border
	Text       *Text
}

// Border is a solid frame drawn inside the canvas edge.
type Border struct {
	Color color.RGBA
	Width uint32
}

// Text is a single line drawn centered on the canvas.
type Text struct {
	Value string
	Color color.RGBA
}

// Render rasterizes the canvas at the given pixel size.
func (c Canvas) Render(w, h uint32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	draw.Draw(img, img.Bounds(), image.NewUniform(c.Background), image.Point{}, draw.Src)

	if c.Border != nil && c.Border.Width > 0 {
		bw := int(c.Border.Width)
		src := image.NewUniform(c.Border.Color)
		b := img.Bounds()
		// top, bottom, left, right
		draw.Draw(img, image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+bw), src, image.Point{}, draw.Src)
		draw.Draw(img, image.Rect(b.Min.X, b.Max.Y-bw, b.Max.X, b.Max.Y), src, image.Point{}, draw.Src)
		draw.Draw(img, image.Rect(b.Min.X, b.Min.Y, b.Min.X+bw, b.Max.Y), src, image.Point{}, draw.Src)
		draw.Draw(img, image.Rect(b.Max.X-bw, b.Min.Y, b.Max.X, b.Max.Y), src, image.Point{}, draw.Src)
	}

	if c.Text != nil && c.Text.Value != "" {
		face := basicfont.Face7x13
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(c.Text.Color),
			Face: face,
		}
		width := d.MeasureString(c.Text.Value)
		d.Dot = fixed.Point26_6{
			X: (fixed.I(int(w)) - width) / 2,
			Y: fixed.I((int(h) + face.Ascent - face.Descent) / 2),
		}
		d.DrawString(c.Text.Value)
	}

	return img
}
