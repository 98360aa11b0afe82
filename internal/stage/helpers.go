package stage

import (
	"errors"
	"io/fs"
	"os"

	"quizprep/internal/fileutil"
	"quizprep/internal/records"
)

// ReadCollection loads a record collection for a stage. Missing or unreadable
// files are tagged ErrIO; malformed content is tagged ErrValidation.
func ReadCollection(stage, path string) (*records.Collection, error) {
	coll, err := records.ReadFile(path)
	if err != nil {
		return nil, classifyRead(stage, path, err)
	}
	return coll, nil
}

// ReadData decodes the data array of the collection at path into v.
func ReadData(stage, path string, v any) error {
	file, err := os.Open(path)
	if err != nil {
		return classifyRead(stage, path, err)
	}
	defer file.Close()
	if err := records.UnmarshalData(file, v); err != nil {
		return Wrap(ErrValidation, stage, "read "+path, "input is not a valid collection", err)
	}
	return nil
}

// WriteOutput atomically replaces path with data.
func WriteOutput(stage, path string, data []byte) error {
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return Wrap(ErrIO, stage, "write "+path, "", err)
	}
	return nil
}

func classifyRead(stage, path string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return Wrap(ErrIO, stage, "read "+path, "", err)
	}
	return Wrap(ErrValidation, stage, "read "+path, "input is not a valid collection", err)
}
