package viz

import (
	"fmt"
	"math"
)

// ChannelOrder names the pixel channel layout of a normalized image.
type ChannelOrder string

const (
	ChannelRGB  ChannelOrder = "RGB"
	ChannelRGBA ChannelOrder = "RGBA"
)

// Image is a normalized image frame ready for the viewer: row-major
// Height x Width x Channels uint8 pixels in canonical RGB/RGBA order.
type Image struct {
	Height   int
	Width    int
	Channels int
	Order    ChannelOrder
	Pixels   []uint8
}

// IngestOutcome reports what happened to one image payload.
type IngestOutcome string

const (
	// ImageLogged means the frame was normalized and appended.
	ImageLogged IngestOutcome = "logged"
	// ImageSkippedNil means no frame was present this tick; not a warning.
	ImageSkippedNil IngestOutcome = "skipped-nil"
	// SkippedInvalidType means the payload was not array-like.
	SkippedInvalidType IngestOutcome = "skipped-invalid-type"
	// SkippedInvalidShape means the payload had the wrong rank or zero size.
	SkippedInvalidShape IngestOutcome = "skipped-invalid-shape"
)

// ingestImage validates one raw image payload and hands the normalized
// frame to the viewer. Invalid payloads are skipped, never fatal: the
// first failure per origin emits one diagnostic at <origin>/warning and
// later failures at that origin stay silent.
func (s *Session) ingestImage(origin string, payload Value) IngestOutcome {
	if payload == nil {
		return ImageSkippedNil
	}

	var tensor *Tensor
	switch p := payload.(type) {
	case *Tensor:
		tensor = p
	case Sequence:
		converted, err := DenseTensor(p)
		if err != nil {
			s.warnOnce(origin, fmt.Sprintf("skipping non-array image payload: %v", err))
			return SkippedInvalidType
		}
		tensor = converted
	default:
		s.warnOnce(origin, fmt.Sprintf("skipping non-array image payload type %T", payload))
		return SkippedInvalidType
	}

	if tensor == nil || tensor.Size() == 0 || len(tensor.Shape) < 2 || len(tensor.Shape) > 3 {
		shape := []int(nil)
		if tensor != nil {
			shape = tensor.Shape
		}
		s.warnOnce(origin, fmt.Sprintf("skipping image with invalid shape %v", shape))
		return SkippedInvalidShape
	}

	s.viewer.AppendImage(origin, normalizeImage(tensor))
	s.stats.ImagesAppended++
	return ImageLogged
}

// normalizeImage converts a rank-2 or rank-3 tensor to canonical channel
// order: grayscale is replicated to RGB, BGR becomes RGB, BGRA becomes
// RGBA. Other channel counts pass through with pixels untouched.
func normalizeImage(t *Tensor) *Image {
	height, width, channels := t.Shape[0], t.Shape[1], 1
	if len(t.Shape) == 3 {
		channels = t.Shape[2]
	}

	order := ChannelRGB
	if channels == 4 {
		order = ChannelRGBA
	}

	if channels == 1 {
		// Grayscale: replicate the single channel across RGB.
		pixels := make([]uint8, 0, height*width*3)
		for _, v := range t.Data {
			p := clampPixel(v)
			pixels = append(pixels, p, p, p)
		}
		return &Image{Height: height, Width: width, Channels: 3, Order: ChannelRGB, Pixels: pixels}
	}

	pixels := make([]uint8, len(t.Data))
	for i := 0; i < len(t.Data); i += channels {
		for c := 0; c < channels; c++ {
			pixels[i+c] = clampPixel(t.Data[i+c])
		}
		if channels == 3 || channels == 4 {
			// Stored blue-first; swap to red-first.
			pixels[i], pixels[i+2] = pixels[i+2], pixels[i]
		}
	}
	return &Image{Height: height, Width: width, Channels: channels, Order: order, Pixels: pixels}
}

func clampPixel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
