package model

import (
	"encoding/json"
	"io"
	"os"

	"github.com/YuminosukeSato/gbtree/pkg/errors"
)

// SaveModel writes model as indented JSON to filename. The model controls its
// encoding through json.Marshaler.
//
// Example:
//
//	reg := tree.NewGBTree()
//	// ... fit ...
//	err := model.SaveModel(reg, "tree.json")
func SaveModel(model interface{}, filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", filename)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close %s", filename)
		}
	}()

	return SaveModelToWriter(model, file)
}

// LoadModel reads a model saved by SaveModel into model, which must be a pointer.
func LoadModel(model interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", filename)
	}
	defer file.Close()

	return LoadModelFromReader(model, file)
}

// SaveModelToWriter writes model as indented JSON to w.
func SaveModelToWriter(model interface{}, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(model); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

// LoadModelFromReader decodes a model from r into model, which must be a pointer.
func LoadModelFromReader(model interface{}, r io.Reader) error {
	if err := json.NewDecoder(r).Decode(model); err != nil {
		return errors.Wrap(err, "failed to decode model")
	}
	return nil
}
