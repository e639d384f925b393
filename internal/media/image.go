package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// MaxLogoSide é o maior lado, em pixels, de um logo já processado.
	MaxLogoSide = 512

	MaxUploadBytes = 5 << 20

	logoQuality = 85
)

var (
	ErrUnsupportedImage = errors.New("media: unsupported image format")
	ErrTooLarge         = errors.New("media: image too large")
)

// Decode aceita jpeg, png e webp.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("media: read image: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, ErrTooLarge
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	return img, nil
}

// Fit reduz a imagem para caber em side x side mantendo a proporção.
// Imagens menores são devolvidas sem alteração.
func Fit(img image.Image, side int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= side && h <= side {
		return img
	}

	nw, nh := side, side
	if w > h {
		nh = h * side / w
	} else {
		nw = w * side / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func EncodeWebP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: logoQuality}); err != nil {
		return nil, fmt.Errorf("media: encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// ProcessLogo decodifica, redimensiona e converte o logo para webp.
func ProcessLogo(r io.Reader) ([]byte, error) {
	img, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return EncodeWebP(Fit(img, MaxLogoSide))
}
