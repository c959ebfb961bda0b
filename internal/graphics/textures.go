package graphics

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

// DarkFactor scales the faces hit across vertical grid lines.
const DarkFactor = 0.6

// LoadTexture decodes an image file and normalizes it to a size x size square.
func LoadTexture(path string, size int) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return Normalize(img, size), nil
}

// Normalize rescales img to size x size with nearest-neighbour sampling, so
// one texture column maps to one source column.
func Normalize(img image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Darken returns a copy of img with every colour channel scaled by factor.
func Darken(img image.Image, factor float64) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, img, b, draw.Src, nil)
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = uint8(float64(dst.Pix[i]) * factor)
		dst.Pix[i+1] = uint8(float64(dst.Pix[i+1]) * factor)
		dst.Pix[i+2] = uint8(float64(dst.Pix[i+2]) * factor)
	}
	return dst
}

// Placeholder draws a brick pattern in base with darker mortar lines, used
// when no texture file exists.
func Placeholder(size int, base color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	mortar := color.RGBA{base.R / 2, base.G / 2, base.B / 2, 255}
	course := max(1, size/4)
	for y := 0; y < size; y++ {
		row := y / course
		shift := 0
		if row%2 == 1 {
			shift = size / 4
		}
		for x := 0; x < size; x++ {
			c := base
			if y%course == course-1 || (x+shift)%(size/2+1) == 0 {
				c = mortar
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// RGB converts a config colour triple.
func RGB(c [3]int) color.RGBA {
	return color.RGBA{clampByte(c[0]), clampByte(c[1]), clampByte(c[2]), 255}
}

func clampByte(v int) uint8 {
	return uint8(min(max(v, 0), 255))
}
