package cpu

import (
	"github.com/pkg/errors"

	"github.com/backprop-go/backprop/internal/tensor"
)

// Window describes a sliding window over the two trailing (spatial)
// dimensions of a 4-D tensor.
type Window struct {
	H, W   int // window height and width
	Stride int
	Pad    int // zero padding added to each side of H and W
}

// ConvOutputSize returns (in + 2*pad - filter)/stride + 1.
//
// The division must be exact: a window that does not tile the padded
// input is a configuration error.
func ConvOutputSize(in, filter, stride, pad int) (int, error) {
	if filter <= 0 || stride <= 0 || pad < 0 {
		return 0, errors.Wrapf(tensor.ErrShapeMismatch,
			"invalid window: filter=%d stride=%d pad=%d", filter, stride, pad)
	}
	span := in + 2*pad - filter
	if span < 0 {
		return 0, errors.Wrapf(tensor.ErrShapeMismatch,
			"window %d larger than padded input %d", filter, in+2*pad)
	}
	if span%stride != 0 {
		return 0, errors.Wrapf(tensor.ErrShapeMismatch,
			"(%d + 2*%d - %d) is not divisible by stride %d", in, pad, filter, stride)
	}
	return span/stride + 1, nil
}

// outputSize resolves (outH, outW) for an input of shape [N, C, H, W].
func (w Window) outputSize(shape tensor.Shape) (int, int, error) {
	if len(shape) != 4 {
		return 0, 0, errors.Wrapf(tensor.ErrShapeMismatch, "expected 4-D [N,C,H,W] shape, got %v", shape)
	}
	outH, err := ConvOutputSize(shape[2], w.H, w.Stride, w.Pad)
	if err != nil {
		return 0, 0, errors.Wrap(err, "height")
	}
	outW, err := ConvOutputSize(shape[3], w.W, w.Stride, w.Pad)
	if err != nil {
		return 0, 0, errors.Wrap(err, "width")
	}
	return outH, outW, nil
}

// Im2Col unfolds a 4-D tensor into a 2-D matrix of receptive fields.
//
// Input: [N, C, H, W]
// Output: [N * outH * outW, C * win.H * win.W]
//
// Each row holds the window for one output position; rows are ordered by
// (sample, outRow, outCol) and columns by (channel, windowRow, windowCol).
// Positions that fall in the padding read as zero.
//
// Example:
//
//	col, err := cpu.Im2Col(x, cpu.Window{H: 3, W: 3, Stride: 1, Pad: 1})
func Im2Col(input *tensor.Dense, win Window) (*tensor.Dense, error) {
	shape := input.Shape()
	outH, outW, err := win.outputSize(shape)
	if err != nil {
		return nil, errors.Wrap(err, "im2col")
	}
	N, C, H, W := shape[0], shape[1], shape[2], shape[3]

	colWidth := C * win.H * win.W
	col := tensor.Zeros(N*outH*outW, colWidth)

	src := input.Data()
	dst := col.Data()
	rowIdx := 0

	for n := 0; n < N; n++ {
		for oh := 0; oh < outH; oh++ {
			for ow := 0; ow < outW; ow++ {
				// Top-left corner in unpadded input space
				hStart := oh*win.Stride - win.Pad
				wStart := ow*win.Stride - win.Pad

				bufIdx := rowIdx * colWidth
				for c := 0; c < C; c++ {
					plane := (n*C + c) * H * W
					for kh := 0; kh < win.H; kh++ {
						h := hStart + kh
						for kw := 0; kw < win.W; kw++ {
							w := wStart + kw
							if h >= 0 && h < H && w >= 0 && w < W {
								dst[bufIdx] = src[plane+h*W+w]
							}
							bufIdx++
						}
					}
				}
				rowIdx++
			}
		}
	}

	return col, nil
}

// Col2Im folds a column matrix produced by Im2Col back into a 4-D tensor
// of the given shape. It is the adjoint of Im2Col: every row is
// scatter-added into its receptive field, so an input cell covered by
// several overlapping windows receives the sum of their contributions.
// Contributions that land in the padding are dropped.
//
// Col2Im(Im2Col(x)) equals x only when windows do not overlap
// (stride >= window size).
func Col2Im(col *tensor.Dense, shape tensor.Shape, win Window) (*tensor.Dense, error) {
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrap(err, "col2im")
	}
	outH, outW, err := win.outputSize(shape)
	if err != nil {
		return nil, errors.Wrap(err, "col2im")
	}
	N, C, H, W := shape[0], shape[1], shape[2], shape[3]

	colWidth := C * win.H * win.W
	expected := tensor.Shape{N * outH * outW, colWidth}
	if !col.Shape().Equal(expected) {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "col2im: column matrix %v, want %v for input %v",
			col.Shape(), expected, shape)
	}

	img, err := tensor.New(shape)
	if err != nil {
		return nil, errors.Wrap(err, "col2im")
	}

	src := col.Data()
	dst := img.Data()
	rowIdx := 0

	for n := 0; n < N; n++ {
		for oh := 0; oh < outH; oh++ {
			for ow := 0; ow < outW; ow++ {
				hStart := oh*win.Stride - win.Pad
				wStart := ow*win.Stride - win.Pad

				bufIdx := rowIdx * colWidth
				for c := 0; c < C; c++ {
					plane := (n*C + c) * H * W
					for kh := 0; kh < win.H; kh++ {
						h := hStart + kh
						for kw := 0; kw < win.W; kw++ {
							w := wStart + kw
							if h >= 0 && h < H && w >= 0 && w < W {
								dst[plane+h*W+w] += src[bufIdx]
							}
							bufIdx++
						}
					}
				}
				rowIdx++
			}
		}
	}

	return img, nil
}
