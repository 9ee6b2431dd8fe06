package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/flyer19820218/finance-daily-news/internal/model"
)

const (
	latestFile = "latest_report.json"
	historyDir = "history"
	dateLayout = "2006-01-02"
)

// Store persists report payloads as flat JSON files: one "latest" slot plus
// one file per calendar day under history/.
type Store struct {
	dir string
	now func() time.Time
}

func New(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// WriteLatest replaces the latest payload atomically.
func (s *Store) WriteLatest(p *model.ReportPayload) error {
	return s.write(filepath.Join(s.dir, latestFile), p)
}

// WriteHistory writes the payload to the dated slot for day. A history file
// for a past date is never overwritten; reruns on the same day may rewrite
// today's file.
func (s *Store) WriteHistory(p *model.ReportPayload, day time.Time) error {
	day = day.UTC()
	path := filepath.Join(s.dir, historyDir, day.Format(dateLayout)+".json")

	if day.Format(dateLayout) != s.now().UTC().Format(dateLayout) {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
	}
	return s.write(path, p)
}

// Latest returns the latest payload, or (nil, nil) when none has been
// written yet.
func (s *Store) Latest() (*model.ReportPayload, error) {
	return s.read(filepath.Join(s.dir, latestFile))
}

// History returns the payload for a YYYY-MM-DD date, or (nil, nil) when that
// day has no report.
func (s *Store) History(date string) (*model.ReportPayload, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid history date %q: %w", date, err)
	}
	return s.read(filepath.Join(s.dir, historyDir, date+".json"))
}

// HistoryDates lists the available history dates, newest first.
func (s *Store) HistoryDates() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, historyDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing history: %w", err)
	}

	var dates []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		date := strings.TrimSuffix(name, ".json")
		if _, err := time.Parse(dateLayout, date); err != nil {
			continue
		}
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

func (s *Store) write(path string, p *model.ReportPayload) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing payload: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing payload: %w", err)
	}
	return nil
}

func (s *Store) read(path string) (*model.ReportPayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading payload: %w", err)
	}

	var p model.ReportPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding payload %s: %w", path, err)
	}
	return &p, nil
}
