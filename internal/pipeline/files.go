package pipeline

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// NDCAOutputFile and O2CMOutputFile are the interchange file names shared by
// the scrape and import commands.
const (
	NDCAOutputFile = "ndca_dancers.json"
	O2CMOutputFile = "o2cm_results.json"
)

// WriteRecords writes a record slice to path as an indented JSON array,
// creating parent directories as needed.
func WriteRecords[T any](path string, records []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrap(err, "pipeline: create output dir")
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return eris.Wrap(err, "pipeline: marshal records")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "pipeline: write records")
	}
	return nil
}

// ReadRecords reads a JSON array written by WriteRecords. A missing file is
// not an error: the source is logged and skipped so one absent scrape output
// never blocks importing the other.
func ReadRecords[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			zap.L().Warn("scrape output not found, skipping source", zap.String("path", path))
			return nil, nil
		}
		return nil, eris.Wrap(err, "pipeline: read records")
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, eris.Wrapf(err, "pipeline: parse %s", path)
	}
	return records, nil
}
