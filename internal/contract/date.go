package contract

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date on the wire. It accepts YYYY-MM-DD or RFC3339. An
// empty string decodes to the zero Date, which patch requests treat as
// "clear the stored value".
type Date struct {
	time.Time
}

// ParseDate parses s as YYYY-MM-DD, falling back to RFC3339.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{t.UTC()}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("date %q is not YYYY-MM-DD: %w", s, domain.ErrInvalid)
	}
	y, m, d := t.UTC().Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}, nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", domain.ErrInvalid)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// Value converts an optional create field: nil and zero both mean unset.
func (d *Date) Value() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// Patch converts an optional patch field for domain.PatchTime: nil leaves the
// stored value alone, zero clears it.
func (d *Date) Patch() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
