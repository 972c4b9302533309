package storage

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

var ErrNotImage = errors.New("not an image")

type imageKind struct {
	format      imaging.Format
	contentType string
}

var allowedExtensions = map[string]imageKind{
	".png":  {imaging.PNG, "image/png"},
	".jpg":  {imaging.JPEG, "image/jpeg"},
	".jpeg": {imaging.JPEG, "image/jpeg"},
}

// Prepare checks that data is a png or jpeg whose sniffed type matches the
// extension of filename, decodes it and scales it down to maxWidth. It
// returns the re-encoded bytes, the content type and the lowercased extension.
func Prepare(filename string, data []byte, maxWidth int) ([]byte, string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	kind, ok := allowedExtensions[ext]
	if !ok {
		return nil, "", "", fmt.Errorf("%w: extension %q", ErrNotImage, ext)
	}

	contentType := http.DetectContentType(data)
	if contentType != kind.contentType {
		return nil, "", "", fmt.Errorf("%w: content type %q", ErrNotImage, contentType)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Fit(img, maxWidth, img.Bounds().Dy(), imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, kind.format, imaging.JPEGQuality(85)); err != nil {
		return nil, "", "", fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), kind.contentType, ext, nil
}
