package photostore

import (
	"bytes"
	"encoding/base64"

	"github.com/disintegration/imaging"
)

// MaxFileBytes is the per-photo size ceiling, checked before any work.
const MaxFileBytes = 5 * 1024 * 1024

// Inline images larger than this get downscaled and re-encoded as JPEG to
// keep row sizes in check. Remote uploads store the original bytes untouched.
const (
	maxInlineWidth    = 1920
	maxInlineHeight   = 1080
	inlineJPEGQuality = 80
)

var allowedTypes = []string{"image/jpeg", "image/png", "image/webp"}

func allowedType(mime string) bool {
	for _, t := range allowedTypes {
		if t == mime {
			return true
		}
	}
	return false
}

// inlinePayload base64-encodes the photo for inline storage, downscaling
// oversized images first. Bytes that do not decode as an image (webp is
// declared allowed but not decodable here) are encoded as-is.
func inlinePayload(data []byte, contentType string) (payload, outType string) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return base64.StdEncoding.EncodeToString(data), contentType
	}
	b := img.Bounds()
	if b.Dx() <= maxInlineWidth && b.Dy() <= maxInlineHeight {
		return base64.StdEncoding.EncodeToString(data), contentType
	}

	resized := imaging.Fit(img, maxInlineWidth, maxInlineHeight, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(inlineJPEGQuality)); err != nil {
		return base64.StdEncoding.EncodeToString(data), contentType
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), "image/jpeg"
}
