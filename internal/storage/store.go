// Package storage reads the engagement source tables and persists the
// pipeline outputs. All sources and sinks are plain CSV/JSON files in a
// single data directory; each output is written independently in full
// or not at all.
package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pulkitj94/socialpulse/internal/domain"
)

// Well-known file names inside the data directory.
const (
	CommentsFile = "synthetic_comments_data.csv"
	DetailedFile = "enriched_comments_sentiment.csv"
	SummaryFile  = "platform_sentiment_summary.json"
	HistoryFile  = "sentiment_history.csv"
)

// FileStore reads and writes the pipeline's data files under one directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the data directory this store operates on.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

// SummaryPath returns the absolute path of the summary JSON output.
func (s *FileStore) SummaryPath() string {
	return s.path(SummaryFile)
}

// DetailedPath returns the absolute path of the detailed CSV output.
func (s *FileStore) DetailedPath() string {
	return s.path(DetailedFile)
}

// HistoryPath returns the absolute path of the history CSV log.
func (s *FileStore) HistoryPath() string {
	return s.path(HistoryFile)
}

// ReadComments loads the comment table. A missing file maps to
// ErrMissingInput, a table with zero data rows to ErrEmptyInput.
func (s *FileStore) ReadComments() ([]domain.Comment, error) {
	path := s.path(CommentsFile)
	header, rows, err := readCSV(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrMissingInput)
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrEmptyInput)
	}

	cols, err := columnIndex(header, "comment_id", "post_id", "user_handle", "comment_text", "timestamp")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	comments := make([]domain.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, domain.Comment{
			ID:         row[cols["comment_id"]],
			PostID:     row[cols["post_id"]],
			UserHandle: row[cols["user_handle"]],
			Text:       row[cols["comment_text"]],
			Timestamp:  row[cols["timestamp"]],
		})
	}
	return comments, nil
}

// PostIDs lists the post IDs of one platform's organic post listing.
// Returns ok=false when the platform has no listing file.
func (s *FileStore) PostIDs(platform string) ([]string, bool, error) {
	path := s.path(platform + "_organic_posts.csv")
	header, rows, err := readCSV(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}

	cols, err := columnIndex(header, "post_id")
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row[cols["post_id"]])
	}
	return ids, true, nil
}

// WriteDetailed overwrites the detailed table with the full classified
// comment set. Written to a temp file and renamed, so a failed run
// never leaves a partially written table behind.
func (s *FileStore) WriteDetailed(comments []domain.ClassifiedComment) error {
	records := make([][]string, 0, len(comments)+1)
	records = append(records, []string{
		"comment_id", "post_id", "user_handle", "comment_text", "timestamp",
		"label", "score", "platform", "language",
	})
	for _, c := range comments {
		records = append(records, []string{
			c.ID, c.PostID, c.UserHandle, c.Text, c.Timestamp,
			string(c.Sentiment.Label),
			formatFloat(c.Sentiment.Score),
			c.Platform,
			string(c.Language),
		})
	}
	return atomicWriteCSV(s.path(DetailedFile), records)
}

// readCSV returns the header row and all data rows of a CSV file.
func readCSV(path string) (header []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	header, err = r.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	rows, err = r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read rows of %s: %w", path, err)
	}
	return header, rows, nil
}

// columnIndex maps required column names to their position in a header.
func columnIndex(header []string, required ...string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return index, nil
}

// atomicWriteCSV writes records to a temp file in the target directory
// and renames it over the destination.
func atomicWriteCSV(path string, records [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(records); err != nil {
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

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
