// Package export turns a rendered board into files: PNG downloads, data
// URIs, gallery thumbnails and a vector PDF.
package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/Ash22686/Kolam-Kar/internal/board"
	"github.com/Ash22686/Kolam-Kar/internal/render"
)

// ThumbnailSide is the edge length of gallery thumbnails in pixels.
const ThumbnailSide = 200

// FileName is the suggested download name for a PNG export.
func FileName(withDots bool) string {
	if withDots {
		return "kolam-design-with-dots.png"
	}
	return "kolam-design-no-dots.png"
}

// DataURI wraps PNG bytes as a data: URI.
func DataURI(pngData []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData)
}

// WritePNG renders sc through r and writes the PNG to w.
func WritePNG(w io.Writer, r *render.Renderer, sc board.Scene, withDots bool) error {
	data, err := r.Export(sc, withDots)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("export: writing png: %w", err)
	}
	return nil
}

// Thumbnail scales src into a side x side square.
func Thumbnail(src image.Image, side int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// ThumbnailPNG decodes a PNG and returns a scaled-down PNG.
func ThumbnailPNG(pngData []byte, side int) ([]byte, error) {
	if side <= 0 {
		return nil, fmt.Errorf("export: thumbnail side %d", side)
	}
	src, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("export: decoding png: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, Thumbnail(src, side)); err != nil {
		return nil, fmt.Errorf("export: encoding thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
