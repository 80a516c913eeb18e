package dataset

import (
	"github.com/petar/GoMNIST"
	"github.com/pkg/errors"

	"github.com/backprop-go/backprop/internal/tensor"
)

// MNISTClasses is the number of digit classes.
const MNISTClasses = 10

// MNISTOptions controls how MNIST images are converted to tensors.
type MNISTOptions struct {
	// Normalize scales pixels from [0, 255] to [0, 1].
	Normalize bool
	// Image keeps the [N, 1, 28, 28] layout instead of flattening each
	// image to 784 features.
	Image bool
}

// LoadMNIST reads the gzipped IDX files (train-images-idx3-ubyte.gz and
// friends) from dir and returns the training and test sets.
func LoadMNIST(dir string, opts MNISTOptions) (train, test *Set, err error) {
	rawTrain, rawTest, err := GoMNIST.Load(dir)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "load mnist from %s", dir)
	}
	if train, err = fromMNIST(rawTrain, opts); err != nil {
		return nil, nil, errors.Wrap(err, "mnist train set")
	}
	if test, err = fromMNIST(rawTest, opts); err != nil {
		return nil, nil, errors.Wrap(err, "mnist test set")
	}
	return train, test, nil
}

func fromMNIST(raw *GoMNIST.Set, opts MNISTOptions) (*Set, error) {
	n := raw.Count()
	if n == 0 {
		return nil, errors.Wrap(tensor.ErrInvalidShape, "empty set")
	}
	pixels := raw.NRow * raw.NCol

	shape := tensor.Shape{n, pixels}
	if opts.Image {
		shape = tensor.Shape{n, 1, raw.NRow, raw.NCol}
	}
	x, err := tensor.New(shape)
	if err != nil {
		return nil, err
	}

	scale := 1.0
	if opts.Normalize {
		scale = 1.0 / 255.0
	}
	data := x.Data()
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		img, label := raw.Get(i)
		if len(img) != pixels {
			return nil, errors.Wrapf(tensor.ErrShapeMismatch, "image %d has %d pixels, want %d", i, len(img), pixels)
		}
		dst := data[i*pixels : (i+1)*pixels]
		for j, p := range img {
			dst[j] = float64(p) * scale
		}
		labels[i] = int(label)
	}
	return NewSet(x, labels, MNISTClasses)
}
