package storage

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
)

const thumbMaxDim = 480

// Thumbnail decodes an uploaded image, scales its long edge down to
// thumbMaxDim and re-encodes as lossy webp. Images already small enough
// are only re-encoded.
func Thumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > thumbMaxDim || height > thumbMaxDim {
		if width >= height {
			height = height * thumbMaxDim / width
			width = thumbMaxDim
		} else {
			width = width * thumbMaxDim / height
			height = thumbMaxDim
		}

		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
