// filepath: internal/diagnostics/journal.go
package diagnostics

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"voicejournal/internal/logging"
	"voicejournal/internal/metrics"

	"github.com/sirupsen/logrus"
)

const (
	DefaultJournalCapacity = 100
	reportSize             = 10
)

// Record is one journal entry.
type Record struct {
	Classification
	Error   string    `json:"error"`
	Context string    `json:"context,omitempty"`
	At      time.Time `json:"at"`
}

// Journal keeps the most recent classified errors in memory.
type Journal struct {
	mu       sync.Mutex
	records  []Record
	capacity int
	now      func() time.Time
}

func NewJournal(capacity int) *Journal {
	if capacity <= 0 {
		capacity = DefaultJournalCapacity
	}
	return &Journal{capacity: capacity, now: time.Now}
}

// Record classifies err, stores it and mirrors it to the log.
func (j *Journal) Record(err error, category Category, context string) Classification {
	c := Classify(err, category)
	rec := Record{Classification: c, Error: describe(err), Context: context, At: j.now()}

	j.mu.Lock()
	j.records = append(j.records, rec)
	if over := len(j.records) - j.capacity; over > 0 {
		j.records = append(j.records[:0:0], j.records[over:]...)
	}
	j.mu.Unlock()

	metrics.ErrorsClassified.WithLabelValues(string(c.Category), c.Severity.String()).Inc()

	entry := logging.Log.WithFields(logrus.Fields{
		"category": c.Category,
		"severity": c.Severity.String(),
		"title":    c.Title,
		"context":  context,
	})
	switch c.Severity {
	case SeverityLow:
		entry.Info(rec.Error)
	case SeverityMedium:
		entry.Warn(rec.Error)
	default:
		entry.Error(rec.Error)
	}
	return c
}

// Recent returns up to n records, newest first. n <= 0 returns all.
func (j *Journal) Recent(n int) []Record {
	j.mu.Lock()
	defer j.mu.Unlock()
	if n <= 0 || n > len(j.records) {
		n = len(j.records)
	}
	out := make([]Record, 0, n)
	for i := len(j.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, j.records[i])
	}
	return out
}

func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.records)
}

// Report renders a plain-text summary of the most recent errors.
func (j *Journal) Report() string {
	recent := j.Recent(reportSize)

	var b strings.Builder
	b.WriteString("Voice Journal Diagnostic Report\n")
	fmt.Fprintf(&b, "Generated: %s\n", j.now().Format(time.RFC3339))
	fmt.Fprintf(&b, "Total errors recorded: %d\n", j.Len())

	if len(recent) == 0 {
		b.WriteString("\nNo errors recorded.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "\nRecent errors (last %d):\n", len(recent))
	for _, r := range recent {
		fmt.Fprintf(&b, "[%s] %s %s - %s: %s",
			r.At.Format(time.RFC3339), strings.ToUpper(r.Severity.String()), r.Category, r.Title, r.Message)
		if r.Context != "" {
			fmt.Fprintf(&b, " (%s)", r.Context)
		}
		b.WriteString("\n")
	}
	return b.String()
}
