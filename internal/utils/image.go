package utils

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/askboard-dev/askboard/internal/errors"
)

var imageExt = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
}

// ValidateImage sniffs uploaded bytes and returns the canonical extension
// for the detected format. Anything that does not decode as a supported
// image is rejected.
func ValidateImage(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", &errors.ErrorWithStatusCode{Message: "Unsupported image format", StatusCode: 400}
	}
	ext, ok := imageExt[format]
	if !ok {
		return "", &errors.ErrorWithStatusCode{Message: "Unsupported image format", StatusCode: 400}
	}
	return ext, nil
}
