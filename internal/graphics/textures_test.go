package graphics

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestNormalize_NearestNeighbour(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	src.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	src.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	src.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})

	dst := Normalize(src, 8)
	if dst.Bounds().Dx() != 8 || dst.Bounds().Dy() != 8 {
		t.Fatalf("Expected 8x8, got %v", dst.Bounds())
	}
	if got := dst.RGBAAt(3, 3); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Expected red top-left quadrant, got %v", got)
	}
	if got := dst.RGBAAt(4, 0); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("Expected green top-right quadrant, got %v", got)
	}
	if got := dst.RGBAAt(7, 7); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("Expected white bottom-right quadrant, got %v", got)
	}
}

func TestDarken(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{200, 100, 50, 255})

	dark := Darken(src, 0.5)
	if got := dark.RGBAAt(0, 0); got != (color.RGBA{100, 50, 25, 255}) {
		t.Errorf("Expected halved channels with opaque alpha, got %v", got)
	}
	if src.RGBAAt(0, 0).R != 200 {
		t.Error("Expected the source to be left untouched")
	}
}

func TestPlaceholder(t *testing.T) {
	base := color.RGBA{180, 80, 60, 255}
	img := Placeholder(16, base)
	if img.Bounds().Dx() != 16 {
		t.Fatalf("Expected 16 px wide, got %d", img.Bounds().Dx())
	}

	var bases, mortar int
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			switch img.RGBAAt(x, y) {
			case base:
				bases++
			case color.RGBA{90, 40, 30, 255}:
				mortar++
			default:
				t.Fatalf("Unexpected colour %v at (%d,%d)", img.RGBAAt(x, y), x, y)
			}
		}
	}
	if bases == 0 || mortar == 0 {
		t.Errorf("Expected both brick and mortar, got %d and %d", bases, mortar)
	}
}

func TestLoadTexture(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	path := filepath.Join(t.TempDir(), "wall.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	tex, err := LoadTexture(path, 64)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if tex.Bounds().Dx() != 64 || tex.RGBAAt(63, 63) != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("Expected a white 64x64 texture, got %v", tex.Bounds())
	}

	if _, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png"), 64); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestRGB(t *testing.T) {
	if got := RGB([3]int{-5, 128, 300}); got != (color.RGBA{0, 128, 255, 255}) {
		t.Errorf("Expected clamped colour, got %v", got)
	}
}
