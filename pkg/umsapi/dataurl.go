package umsapi

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// imagePart is a binary image ready to be attached to a multipart body.
type imagePart struct {
	Filename string
	Content  []byte
}

// resolveImage turns an image reference from the draft (data-URL or local
// file path) into bytes for the multipart submission. Remote http(s) URLs are
// passed through as plain fields instead, so they resolve to nil here.
func resolveImage(ref, field string) (*imagePart, error) {
	switch {
	case ref == "":
		return nil, nil
	case strings.HasPrefix(ref, "data:"):
		content, ext, err := decodeDataURL(ref)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		return &imagePart{Filename: field + ext, Content: content}, nil
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return nil, nil
	default:
		content, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read image file: %w", field, err)
		}
		return &imagePart{Filename: field + extFromPath(ref), Content: content}, nil
	}
}

// decodeDataURL decodes a base64 data-URL ("data:image/png;base64,....") and
// returns the raw bytes plus a file extension derived from the media type.
func decodeDataURL(ref string) ([]byte, string, error) {
	meta, encoded, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URL")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return nil, "", fmt.Errorf("data URL is not base64 encoded")
	}
	content, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode data URL: %w", err)
	}

	mediaType := strings.TrimSuffix(meta, ";base64")
	ext := ".bin"
	switch mediaType {
	case "image/png":
		ext = ".png"
	case "image/jpeg", "image/jpg":
		ext = ".jpg"
	case "image/gif":
		ext = ".gif"
	case "image/webp":
		ext = ".webp"
	case "image/svg+xml":
		ext = ".svg"
	}
	return content, ext, nil
}

func extFromPath(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 && i < len(path)-1 {
		return path[i:]
	}
	return ""
}
