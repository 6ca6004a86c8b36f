package image

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"

	"github.com/brandlens/photogen/common/client"
	"github.com/brandlens/photogen/common/config"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// GetImageFromUrl fetches a reference image and returns its mime type together
// with the base64-encoded bytes, ready for an inlineData part.
func GetImageFromUrl(url string) (mimeType string, data string, err error) {
	resp, err := client.UserContentRequestHTTPClient.Get(url)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("failed to fetch reference image, status %d", resp.StatusCode)
	}
	mimeType = resp.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		return "", "", fmt.Errorf("reference url is not an image: %s", mimeType)
	}
	maxSize := int64(config.MaxReferenceImageMB) << 20
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxSize+1))
	if err != nil {
		return "", "", err
	}
	if int64(len(raw)) > maxSize {
		return "", "", fmt.Errorf("reference image exceeds %dMB limit", config.MaxReferenceImageMB)
	}
	if err = validate(raw); err != nil {
		return "", "", err
	}
	return mimeType, base64.StdEncoding.EncodeToString(raw), nil
}

// ValidateBase64 checks that inline reference data decodes to a real image
// within the size limit.
func ValidateBase64(data string) error {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return fmt.Errorf("reference image is not valid base64: %w", err)
	}
	if int64(len(raw)) > int64(config.MaxReferenceImageMB)<<20 {
		return fmt.Errorf("reference image exceeds %dMB limit", config.MaxReferenceImageMB)
	}
	return validate(raw)
}

func validate(raw []byte) error {
	if _, _, err := image.DecodeConfig(bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("unable to decode reference image: %w", err)
	}
	return nil
}
