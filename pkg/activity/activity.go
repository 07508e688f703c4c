package activity

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

var header = []string{
	"timestamp_iso",
	"group_id",
	"group_name",
	"contact_id",
	"contact_name",
	"phone_last4",
	"message",
}

// Record is one logged group message.
type Record struct {
	Timestamp   time.Time
	GroupID     string
	GroupName   string
	ContactID   string
	ContactName string
	PhoneLast4  string
	Message     string
}

// Logger appends group activity to a CSV file. Appends are serialized with a
// mutex since message events arrive concurrently.
type Logger struct {
	path string
	mu   sync.Mutex
}

func NewLogger(path string) *Logger {
	return &Logger{path: path}
}

// Append writes one record, creating the file and header on first use.
func (l *Logger) Append(r Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensure(); err != nil {
		return err
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open activity log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		r.Timestamp.UTC().Format(time.RFC3339),
		r.GroupID,
		r.GroupName,
		r.ContactID,
		r.ContactName,
		r.PhoneLast4,
		flatten(r.Message),
	}); err != nil {
		return fmt.Errorf("write activity row: %w", err)
	}
	w.Flush()
	return w.Error()
}

// MemberCount is one row of the activity ranking.
type MemberCount struct {
	ContactID string
	Name      string
	Last4     string
	Count     int
}

// TopMembers ranks contacts by message count within one group. A missing log
// file yields an empty ranking, not an error.
func (l *Logger) TopMembers(groupID string, limit int) ([]MemberCount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open activity log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read activity log: %w", err)
	}

	counts := make(map[string]*MemberCount)
	for i, row := range rows {
		if i == 0 || len(row) < 6 {
			continue // header or malformed row
		}
		if row[1] != groupID {
			continue
		}
		mc, ok := counts[row[3]]
		if !ok {
			mc = &MemberCount{ContactID: row[3]}
			counts[row[3]] = mc
		}
		mc.Count++
		if mc.Name == "" {
			mc.Name = row[4]
		}
		if mc.Last4 == "" {
			mc.Last4 = row[5]
		}
	}

	ranking := make([]MemberCount, 0, len(counts))
	for _, mc := range counts {
		ranking = append(ranking, *mc)
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Count != ranking[j].Count {
			return ranking[i].Count > ranking[j].Count
		}
		return ranking[i].ContactID < ranking[j].ContactID
	})
	if limit > 0 && len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking, nil
}

func (l *Logger) ensure() error {
	if _, err := os.Stat(l.path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	f, err := os.Create(l.path)
	if err != nil {
		return fmt.Errorf("create activity log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	w.Flush()
	return w.Error()
}

// flatten folds newlines so each record stays on one CSV line, matching how
// rows were logged historically.
func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}
