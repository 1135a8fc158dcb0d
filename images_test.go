package stanza

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestProcessImageKeepsSmall(t *testing.T) {
	src := encodePNG(t, 640, 480)
	img, data, err := processImage(src, "My Photo.PNG")
	if err != nil {
		t.Fatalf("processImage: %v", err)
	}
	if img.Width != 640 || img.Height != 480 {
		t.Errorf("dimensions = %dx%d", img.Width, img.Height)
	}
	if img.Filename != "my-photo.jpg" {
		t.Errorf("filename = %q", img.Filename)
	}
	if img.OriginalName != "My Photo.PNG" {
		t.Errorf("original = %q", img.OriginalName)
	}
	if img.Size != len(data) || len(data) == 0 {
		t.Errorf("size = %d, data = %d bytes", img.Size, len(data))
	}
}

func TestProcessImageResizesWide(t *testing.T) {
	src := encodePNG(t, 1600, 800)
	img, _, err := processImage(src, "wide.png")
	if err != nil {
		t.Fatalf("processImage: %v", err)
	}
	if img.Width != maxImageWidth {
		t.Errorf("width = %d, want %d", img.Width, maxImageWidth)
	}
	// Aspect ratio preserved.
	if img.Height != 400 {
		t.Errorf("height = %d, want 400", img.Height)
	}
}

func TestProcessImageFallbackName(t *testing.T) {
	src := encodePNG(t, 10, 10)
	img, _, err := processImage(src, "___.png")
	if err != nil {
		t.Fatalf("processImage: %v", err)
	}
	// Unsluggable names get a generated one.
	if img.Filename == ".jpg" || len(img.Filename) < 5 {
		t.Errorf("filename = %q", img.Filename)
	}
}

func TestProcessImageRejectsGarbage(t *testing.T) {
	if _, _, err := processImage(bytes.NewReader([]byte("not an image")), "x.png"); err == nil {
		t.Error("expected decode error")
	}
}
