package stanza

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/eringen/stanza/views"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	mediaSubdir   = "media"
)

// processImage decodes an image from src, resizes it down to maxImageWidth
// if wider, and encodes it as JPEG. Returns metadata and the encoded bytes.
func processImage(src io.Reader, originalName string) (Image, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return Image{}, nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxImageWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Image{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	base := Slugify(strings.TrimSuffix(originalName, filepath.Ext(originalName)))
	if base == "" {
		base = uuid.NewString()[:8]
	}

	return Image{
		Filename:     base + ".jpg",
		OriginalName: originalName,
		Width:        w,
		Height:       h,
		Size:         buf.Len(),
		UploadedAt:   time.Now().UTC().Format(time.RFC3339),
	}, buf.Bytes(), nil
}

func (s *Server) mediaDir() string {
	return filepath.Join(s.Site.Config.StaticDir, mediaSubdir)
}

// ensureUniqueFilename appends a counter while the filename collides on disk
// or in the image metadata table.
func (s *Server) ensureUniqueFilename(img *Image) {
	base := strings.TrimSuffix(img.Filename, ".jpg")
	existing, _ := s.Site.Cache.ListImages()
	taken := func(name string) bool {
		if _, err := os.Stat(filepath.Join(s.mediaDir(), name)); err == nil {
			return true
		}
		for _, ex := range existing {
			if ex.Filename == name {
				return true
			}
		}
		return false
	}

	candidate := img.Filename
	for counter := 1; taken(candidate); counter++ {
		candidate = fmt.Sprintf("%s-%d.jpg", base, counter+1)
	}
	img.Filename = candidate
}

func (s *Server) handleImageUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if s.Site.Cache == nil {
		return c.String(http.StatusServiceUnavailable, "Image uploads need the build cache enabled")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.String(http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return c.String(http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	img, data, err := processImage(src, file.Filename)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid image: "+err.Error())
	}

	s.ensureUniqueFilename(&img)

	if err := os.MkdirAll(s.mediaDir(), 0o755); err != nil {
		return fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.mediaDir(), img.Filename), data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if err := s.Site.Cache.SaveImage(img); err != nil {
		return err
	}

	// The static dir copies into the output on the next build; the watcher
	// picks the new file up, so the upload is immediately linkable.
	return s.renderImageList(c)
}

func (s *Server) handleImageDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if s.Site.Cache == nil {
		return c.String(http.StatusServiceUnavailable, "Image uploads need the build cache enabled")
	}

	filename := filepath.Base(c.Param("filename"))
	if filename == "" || filename == "." {
		return c.String(http.StatusBadRequest, "Filename required")
	}

	// Ignore a missing file, the metadata row is what matters.
	_ = os.Remove(filepath.Join(s.mediaDir(), filename))
	if err := s.Site.Cache.DeleteImage(filename); err != nil {
		return err
	}
	return s.renderImageList(c)
}

func (s *Server) handleImageList(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if s.Site.Cache == nil {
		return Render(c, views.AdminImages(viewConfig(s.Site.Config), nil, CsrfToken(c)))
	}
	return s.renderImageList(c)
}

func (s *Server) renderImageList(c echo.Context) error {
	images, err := s.Site.Cache.ListImages()
	if err != nil {
		return err
	}
	infos := make([]views.ImageInfo, 0, len(images))
	for _, img := range images {
		infos = append(infos, views.ImageInfo{
			Filename: img.Filename,
			Width:    img.Width,
			Height:   img.Height,
			Size:     img.Size,
		})
	}
	return Render(c, views.AdminImages(viewConfig(s.Site.Config), infos, CsrfToken(c)))
}
