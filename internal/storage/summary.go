package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pulkitj94/socialpulse/internal/domain"
)

// WriteSummary overwrites the summary JSON with the current run's
// platform summaries. Temp file + rename keeps the previous summary
// intact if the write fails.
func (s *FileStore) WriteSummary(summaries []domain.PlatformSummary) error {
	data, err := json.MarshalIndent(summaries, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	path := s.path(SummaryFile)
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// ReadSummary loads the most recently written platform summaries.
func (s *FileStore) ReadSummary() ([]domain.PlatformSummary, error) {
	data, err := os.ReadFile(s.path(SummaryFile))
	if err != nil {
		return nil, err
	}
	var summaries []domain.PlatformSummary
	if err := json.Unmarshal(data, &summaries); err != nil {
		return nil, fmt.Errorf("parse summary: %w", err)
	}
	return summaries, nil
}
