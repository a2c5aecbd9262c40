package feeds

import (
	"context"
	"fmt"

	"github.com/disintegration/imaging"
)

// PixelFetcher loads an image file and downscales it to a small pixel
// grid for half-block cell rendering. Decoding runs through the
// scheduler so a large file never stalls the UI; re-fetching picks up
// edits to the file on disk.
type PixelFetcher struct {
	Path      string
	PixelSize int
}

// NewPixelFetcher returns a fetcher for path, downscaled so the longest
// side is pixelSize pixels.
func NewPixelFetcher(path string, pixelSize int) *PixelFetcher {
	if pixelSize <= 0 {
		pixelSize = 32
	}
	return &PixelFetcher{Path: path, PixelSize: pixelSize}
}

// Fetch implements Fetcher. Returns *PixelImage.
func (f *PixelFetcher) Fetch(ctx context.Context) (any, error) {
	img, err := imaging.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("pixelart: open %s: %w", f.Path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()

	fitted := imaging.Fit(img, f.PixelSize, f.PixelSize, imaging.Lanczos)
	fb := fitted.Bounds()
	w, h := fb.Dx(), fb.Dy()

	out := &PixelImage{
		Width:          w,
		Height:         h,
		Pixels:         make([][3]uint8, w*h),
		OriginalWidth:  origW,
		OriginalHeight: origH,
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := fitted.At(fb.Min.X+x, fb.Min.Y+y).RGBA()
			out.Pixels[y*w+x] = [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
		}
	}
	return out, nil
}
