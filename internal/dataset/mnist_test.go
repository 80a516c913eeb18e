package dataset

import (
	"testing"

	"github.com/petar/GoMNIST"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backprop-go/backprop/internal/tensor"
)

func tinyMNIST() *GoMNIST.Set {
	return &GoMNIST.Set{
		NRow:   2,
		NCol:   2,
		Images: []GoMNIST.RawImage{{0, 255, 51, 102}, {255, 0, 0, 0}},
		Labels: []GoMNIST.Label{7, 3},
	}
}

func TestFromMNIST_Flat(t *testing.T) {
	s, err := fromMNIST(tinyMNIST(), MNISTOptions{Normalize: true})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 4}, s.X.Shape())
	assert.Equal(t, []int{7, 3}, s.Labels)
	assert.Equal(t, MNISTClasses, s.Classes)
	assert.InDeltaSlice(t, []float64{0, 1, 0.2, 0.4, 1, 0, 0, 0}, s.X.Data(), 1e-12)
}

func TestFromMNIST_Image(t *testing.T) {
	s, err := fromMNIST(tinyMNIST(), MNISTOptions{Image: true})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 1, 2, 2}, s.X.Shape())
	assert.Equal(t, []float64{0, 255, 51, 102}, s.X.Data()[:4])
}

func TestFromMNIST_BadImage(t *testing.T) {
	raw := tinyMNIST()
	raw.Images[1] = GoMNIST.RawImage{1, 2, 3}
	_, err := fromMNIST(raw, MNISTOptions{})
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = fromMNIST(&GoMNIST.Set{NRow: 2, NCol: 2}, MNISTOptions{})
	require.ErrorIs(t, err, tensor.ErrInvalidShape)
}

func TestLoadMNIST_MissingDir(t *testing.T) {
	_, _, err := LoadMNIST(t.TempDir(), MNISTOptions{})
	require.Error(t, err)
}
