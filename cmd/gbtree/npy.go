package main

import (
	"os"

	"github.com/YuminosukeSato/gbtree/pkg/errors"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

// readMatrix reads a 2-D float64 .npy file.
func readMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read npy header of %s", path)
	}
	if len(r.Header.Descr.Shape) != 2 {
		return nil, errors.Newf("%s: expected a 2-D array, got shape %v", path, r.Header.Descr.Shape)
	}

	m := &mat.Dense{}
	if err := r.Read(m); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return m, nil
}

// readVector reads a float64 .npy file of any shape as a flat vector.
func readVector(path string) (*mat.VecDense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read npy header of %s", path)
	}

	var data []float64
	if err := r.Read(&data); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	if len(data) == 0 {
		return nil, errors.Wrapf(errors.ErrEmptyData, "%s", path)
	}
	return mat.NewVecDense(len(data), data), nil
}

// writeVector writes v as a 1-D float64 .npy file.
func writeVector(path string, v mat.Vector) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close %s", path)
		}
	}()

	data := make([]float64, v.Len())
	for i := range data {
		data[i] = v.AtVec(i)
	}
	if err := npyio.Write(f, data); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
