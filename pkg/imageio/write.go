package imageio

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Write encodes a flat RGB byte buffer (3 bytes per pixel, row-major from
// the top-left) to a file, choosing the codec from the filename extension.
// Supported: png, jpg/jpeg, tiff/tif, bmp, ppm.
func Write(path string, width, height int, pixels []uint8) error {
	if len(pixels) != width*height*3 {
		return fmt.Errorf("imageio: buffer is %d bytes, want %d for %dx%d", len(pixels), width*height*3, width, height)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".ppm" {
		return writePPM(path, width, height, pixels)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for p := 0; p < width*height; p++ {
		img.Pix[p*4] = pixels[p*3]
		img.Pix[p*4+1] = pixels[p*3+1]
		img.Pix[p*4+2] = pixels[p*3+2]
		img.Pix[p*4+3] = 255
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: %w", err)
	}
	defer f.Close()

	switch ext {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case ".tiff", ".tif":
		err = tiff.Encode(f, img, nil)
	case ".bmp":
		err = bmp.Encode(f, img)
	default:
		return fmt.Errorf("imageio: unsupported image format %q", ext)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %s: %w", ext, err)
	}
	return f.Close()
}

// writePPM emits a plain-text P3 file
func writePPM(path string, width, height int, pixels []uint8) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "P3\n%d %d\n255\n", width, height)
	for p := 0; p < width*height; p++ {
		fmt.Fprintf(w, "%d %d %d\n", pixels[p*3], pixels[p*3+1], pixels[p*3+2])
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("imageio: %w", err)
	}
	return f.Close()
}
