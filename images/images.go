// SPDX-License-Identifier: GPL-3.0-only

// Package images processes uploaded case photos: decode, flatten to three
// channels, downscale into an 800x800 bounding box, re-encode as JPEG
// quality 85 under a generated unique filename.
package images

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"loket-server/commons"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	_ "golang.org/x/image/webp"
)

const MaxDimension = 800

var ErrExtensionNotAllowed = errors.New("file extension not allowed")

var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

func AllowedExtension(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	return allowedExtensions[ext]
}

// Process stores the uploaded photo for the given case id and returns the
// stored filename. Any decode or encode failure yields an empty filename; the
// caller keeps the default photo reference in that case. The case id must
// already be allocated because it is embedded in the filename.
func Process(r io.Reader, originalName string, personID uint, uploadDir string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	if !allowedExtensions[ext] {
		return "", ErrExtensionNotAllowed
	}

	img, err := imaging.Decode(r)
	if err != nil {
		commons.Logger.Warnf("Failed to decode uploaded image %q: %v", originalName, err)
		return "", err
	}

	// Flatten alpha or palette images onto white; JPEG carries no alpha.
	bounds := img.Bounds()
	background := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	flat := imaging.Overlay(background, img, image.Pt(0, 0), 1.0)

	// Fit never upscales smaller images.
	resized := imaging.Fit(flat, MaxDimension, MaxDimension, imaging.Lanczos)

	u := uuid.New()
	suffix := hex.EncodeToString(u[:4])
	filename := fmt.Sprintf("missing_person_%d_%s.%s", personID, suffix, ext)
	path := filepath.Join(uploadDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := imaging.Encode(f, resized, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		f.Close()
		os.Remove(path)
		commons.Logger.Warnf("Failed to encode image %q: %v", originalName, err)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}

	return filename, nil
}
