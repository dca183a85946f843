package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/pulkitj94/socialpulse/internal/domain"
)

// AppendComments adds new rows to the comment table, rewriting it in
// full. Returns ok=false when the table does not exist yet; the
// simulator treats an absent source as "nothing to update".
func (s *FileStore) AppendComments(comments []domain.Comment) (bool, error) {
	return s.UpdateTable(CommentsFile, func(header []string, rows [][]string) ([][]string, error) {
		cols, err := columnIndex(header, "comment_id", "post_id", "user_handle", "comment_text", "timestamp")
		if err != nil {
			return nil, err
		}
		for _, c := range comments {
			row := make([]string, len(header))
			row[cols["comment_id"]] = c.ID
			row[cols["post_id"]] = c.PostID
			row[cols["user_handle"]] = c.UserHandle
			row[cols["comment_text"]] = c.Text
			row[cols["timestamp"]] = c.Timestamp
			rows = append(rows, row)
		}
		return rows, nil
	})
}

// UpdateTable applies a read-modify-write cycle to one CSV table. The
// whole table is rewritten atomically; fn receives the header and all
// data rows and returns the new data rows. Absent tables are skipped
// with ok=false, not an error.
func (s *FileStore) UpdateTable(name string, fn func(header []string, rows [][]string) ([][]string, error)) (bool, error) {
	path := s.path(name)
	header, rows, err := readCSV(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if header == nil {
		return false, nil
	}

	updated, err := fn(header, rows)
	if err != nil {
		return false, fmt.Errorf("update %s: %w", path, err)
	}

	records := make([][]string, 0, len(updated)+1)
	records = append(records, header)
	records = append(records, updated...)
	if err := atomicWriteCSV(path, records); err != nil {
		return false, err
	}
	return true, nil
}
