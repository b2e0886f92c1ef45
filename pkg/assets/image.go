package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LoadImage opens and decodes a texture image from disk
func LoadImage(path string, flipY bool) (*image.NRGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer file.Close()

	img, err := DecodeImage(file, flipY)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture %s: %w", path, err)
	}
	return img, nil
}

// DecodeImage decodes any registered format into tightly packed NRGBA pixels.
// With flipY the first row of the result is the bottom row of the image, which is what
// OpenGL expects for texture coordinates with v pointing up.
func DecodeImage(r io.Reader, flipY bool) (*image.NRGBA, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("decoded %s image is empty", format)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)

	if flipY {
		flipRows(dst)
	}
	return dst, nil
}

func flipRows(img *image.NRGBA) {
	h := img.Bounds().Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}
