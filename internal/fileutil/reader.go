package fileutil

import (
	"io"
	"os"
)

// ReadText returns the content of the file at path. The file is assumed to
// hold UTF-8 text. Open and read errors are returned as-is (*fs.PathError),
// and the handle is closed on every path.
func ReadText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// TextLoader adapts ReadText to the manager's loader interface
type TextLoader struct{}

// Load reads the file at path
func (TextLoader) Load(path string) (string, error) {
	return ReadText(path)
}
