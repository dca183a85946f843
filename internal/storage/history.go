package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pulkitj94/socialpulse/internal/domain"
)

var historyHeader = []string{"timestamp", "platform", "health_score"}

// AppendHistory appends one health score row per platform summary for
// the given minute-granularity timestamp. If that exact timestamp
// string exists anywhere in the log already, the entire batch is
// skipped and ErrDuplicateTimestamp returned: the dedup is deliberately
// per-run, not per-platform, making repeated invocations within the
// same clock minute idempotent. The log is created with a header on
// first write.
func (s *FileStore) AppendHistory(timestamp string, summaries []domain.PlatformSummary) error {
	path := s.path(HistoryFile)

	header, rows, err := readCSV(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if header != nil {
		cols, err := columnIndex(header, "timestamp")
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, row := range rows {
			if row[cols["timestamp"]] == timestamp {
				return fmt.Errorf("%s: %w", timestamp, domain.ErrDuplicateTimestamp)
			}
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history log: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	// A nil header covers both an absent log and a zero-byte file left
	// behind by an interrupted first write; either way the header is
	// still owed before any rows.
	if header == nil {
		if err := w.Write(historyHeader); err != nil {
			return fmt.Errorf("write history header: %w", err)
		}
	}
	for _, summary := range summaries {
		row := []string{timestamp, summary.Platform, formatFloat(summary.HealthScore)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("append history row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush history log: %w", err)
	}
	return nil
}

// ReadHistory loads the full history log in append order.
func (s *FileStore) ReadHistory() ([]domain.HistoryRecord, error) {
	path := s.path(HistoryFile)
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, nil
	}

	cols, err := columnIndex(header, "timestamp", "platform", "health_score")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	records := make([]domain.HistoryRecord, 0, len(rows))
	for _, row := range rows {
		score, err := strconv.ParseFloat(row[cols["health_score"]], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad health_score %q: %w", path, row[cols["health_score"]], err)
		}
		records = append(records, domain.HistoryRecord{
			Timestamp:   row[cols["timestamp"]],
			Platform:    row[cols["platform"]],
			HealthScore: score,
		})
	}
	return records, nil
}
