package plate

import (
	"image"
	"image/color"
)

// MaskImage re-expresses the pre-plate-solve masking step: pixels outside
// a circle inscribed in the frame are blanked, and a small disk is
// punched out (also blanked) around each given point — typically the
// meteor's own detections, so the solver's star-matching isn't thrown
// off by the meteor's trail. Grounded on the OpenCV preprocess() this
// replaces: a full-frame circular mask plus per-point disk exclusions,
// re-expressed over image/draw since no OpenCV binding exists in the
// pack and the operation is two flat fills.
func MaskImage(src image.Image, excludePoints []image.Point) image.Image {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	cx, cy := bounds.Min.X+width/2, bounds.Min.Y+height/2
	radius := height / 2
	if width < height {
		radius = width / 2
	}

	out := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !withinCircle(x, y, cx, cy, radius) {
				continue
			}
			out.Set(x, y, src.At(x, y))
		}
	}

	const excludeRadius = 3
	for _, p := range excludePoints {
		for y := p.Y - excludeRadius; y <= p.Y+excludeRadius; y++ {
			for x := p.X - excludeRadius; x <= p.X+excludeRadius; x++ {
				if withinCircle(x, y, p.X, p.Y, excludeRadius) {
					out.Set(x, y, color.Black)
				}
			}
		}
	}

	return out
}

func withinCircle(x, y, cx, cy, radius int) bool {
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= radius*radius
}
