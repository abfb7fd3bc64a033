package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Timestamps are stored as fixed-width UTC text so that comparisons in SQL
// follow time order.
const (
	timestampLayout = "2006-01-02 15:04:05.000000000"
	dateLayout      = "2006-01-02"
)

func encodeTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func encodeTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return encodeTime(*t)
}

func encodeDate(t time.Time) string {
	return t.Format(dateLayout)
}

func encodeDatePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return encodeDate(*t)
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(timestampLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

func decodeTimePtr(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := decodeTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func decodeDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func decodeDatePtr(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := decodeDate(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
