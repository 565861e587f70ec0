package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"weatherhistory.app/internal/ports"
)

// Record is one persisted weather lookup. Records are immutable once created.
type Record struct {
	ID          string    `json:"id"`
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"`
	Condition   string    `json:"condition"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewRecord builds a record with a freshly generated identifier
func NewRecord(city string, temperature float64, condition string, timestamp time.Time) Record {
	return Record{
		ID:          uuid.NewString(),
		City:        city,
		Temperature: temperature,
		Condition:   condition,
		Timestamp:   timestamp.UTC(),
	}
}

// IsValid validates the record before it is appended
func (r *Record) IsValid() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("id cannot be empty")
	}
	if strings.TrimSpace(r.City) == "" {
		return fmt.Errorf("city cannot be empty")
	}
	if r.Timestamp.IsZero() {
		return fmt.Errorf("timestamp must be set")
	}
	return nil
}

func toPortsRecord(r Record) *ports.HistoryRecordData {
	return &ports.HistoryRecordData{
		ID:          r.ID,
		City:        r.City,
		Temperature: r.Temperature,
		Condition:   r.Condition,
		Timestamp:   r.Timestamp,
	}
}

func fromPortsRecords(data []ports.HistoryRecordData) []Record {
	records := make([]Record, 0, len(data))
	for _, d := range data {
		records = append(records, Record{
			ID:          d.ID,
			City:        d.City,
			Temperature: d.Temperature,
			Condition:   d.Condition,
			Timestamp:   d.Timestamp,
		})
	}
	return records
}
