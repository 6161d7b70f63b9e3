package settings

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	// decoders for the accepted upload types
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/dmitrymomot/soar/pkg/validator"
)

// maxAvatarPixels caps the decoded size of an upload, whatever its byte size.
const maxAvatarPixels = 40_000_000

// Crop is the square or rectangle of the source image, in source pixels,
// that becomes the avatar.
type Crop struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (c Crop) rect(origin image.Point) image.Rectangle {
	return image.Rect(c.X, c.Y, c.X+c.Width, c.Y+c.Height).Add(origin)
}

type AvatarOption func(*avatarOptions)

type avatarOptions struct {
	crop *Crop
}

// WithCrop stores only the given region of the upload, re-encoded as JPEG.
func WithCrop(c Crop) AvatarOption {
	return func(o *avatarOptions) { o.crop = &c }
}

// cropImage decodes src, cuts c out of it and encodes the result as JPEG.
// The longer edge is scaled down to maxSide when it exceeds it.
func cropImage(src io.Reader, c Crop, maxSide int) ([]byte, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, undecodableAvatar()
	}
	if cfg.Width*cfg.Height > maxAvatarPixels {
		return nil, validator.ValidationErrors{{
			Field:          "avatar",
			Message:        "must be at most 40 megapixels",
			TranslationKey: "validation.file_too_large",
			TranslationValues: map[string]string{
				"field": "avatar",
				"max":   "40 megapixels",
			},
		}}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, undecodableAvatar()
	}

	bounds := img.Bounds()
	r := c.rect(bounds.Min)
	if c.Width <= 0 || c.Height <= 0 || !r.In(bounds) {
		return nil, validator.ValidationErrors{{
			Field:             "crop",
			Message:           "must lie inside the image",
			TranslationKey:    "validation.crop",
			TranslationValues: map[string]string{"field": "crop"},
		}}
	}

	w, h := scaledSize(c.Width, c.Height, maxSide)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	// JPEG has no alpha, transparent pixels end up white
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	if w == c.Width && h == c.Height {
		draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, r, draw.Over, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}
	return buf.Bytes(), nil
}

func scaledSize(w, h, maxSide int) (int, int) {
	longest := max(w, h)
	if maxSide <= 0 || longest <= maxSide {
		return w, h
	}
	return max(1, w*maxSide/longest), max(1, h*maxSide/longest)
}

func undecodableAvatar() error {
	return validator.ValidationErrors{{
		Field:             "avatar",
		Message:           "must be a JPEG, PNG, GIF or WebP image",
		TranslationKey:    "validation.file_type",
		TranslationValues: map[string]string{"field": "avatar"},
	}}
}
