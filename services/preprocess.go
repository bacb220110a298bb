package services

import (
	"bytes"
	"image"
	"image/jpeg"
)

// maxSourcePixels bounds the decoded size of an upload before any pixel buffer is allocated.
const maxSourcePixels = 40_000_000

// ImagePreprocessor turns encoded JPEG bytes into the classifier's input tensor.
// Pixel values stay on the 0-255 scale the model was trained with.
type ImagePreprocessor struct {
	height, width int
}

func NewImagePreprocessor(height, width int) *ImagePreprocessor {
	return &ImagePreprocessor{height: height, width: width}
}

// Shape is the tensor shape Preprocess produces.
func (p *ImagePreprocessor) Shape() []int {
	return ImageShape(p.height, p.width)
}

func (p *ImagePreprocessor) Preprocess(raw []byte) (Tensor, error) {
	if len(raw) == 0 {
		return Tensor{}, &DecodeError{Reason: "empty image"}
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return Tensor{}, &DecodeError{Reason: "not a JPEG image", Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxSourcePixels {
		return Tensor{}, &DecodeError{Reason: "unsupported image dimensions"}
	}

	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		return Tensor{}, &DecodeError{Reason: "corrupt JPEG data", Err: err}
	}
	switch img.(type) {
	case *image.YCbCr, *image.RGBA, *image.NRGBA:
	default:
		// grayscale and CMYK JPEGs do not have the 3 channels the model expects
		return Tensor{}, &DecodeError{Reason: "image must have 3 color channels"}
	}

	return p.toTensor(img)
}

// toTensor resizes by nearest-neighbour sampling while copying pixels out.
// Output pixel (x, y) is source pixel (floor(x*W/w), floor(y*H/h)), corners unaligned.
func (p *ImagePreprocessor) toTensor(img image.Image) (Tensor, error) {
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	data := make([]float32, 0, p.height*p.width*3)
	for y := 0; y < p.height; y++ {
		sy := nearestIndex(y, srcH, p.height)
		for x := 0; x < p.width; x++ {
			sx := nearestIndex(x, srcW, p.width)
			r, g, bl, _ := img.At(b.Min.X+sx, b.Min.Y+sy).RGBA()
			data = append(data, float32(r>>8), float32(g>>8), float32(bl>>8))
		}
	}
	return NewTensor(p.Shape(), data)
}

func nearestIndex(dst, srcLen, dstLen int) int {
	i := dst * srcLen / dstLen
	if i > srcLen-1 {
		i = srcLen - 1
	}
	return i
}
