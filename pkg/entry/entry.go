package entry

import (
	"strings"
	"time"
)

const (
	// DateLayout is the wire format for the entry date field.
	DateLayout = "2006-01-02"

	// DisplayDateLayout is how dates are shown to the user.
	DisplayDateLayout = "2 Jan 2006"
)

// New returns an unsaved entry for the given owner. The store assigns the ID
// and creation timestamp when the entry is first written.
func New(userID, date, description string) *Entry {
	return &Entry{
		UserID:      userID,
		Date:        date,
		Description: description,
	}
}

// Entry is one logged day of work or leave.
//
// Hours is a pointer so "not recorded" stays distinct from zero: nil means the
// user never specified hours (aggregation treats it as a full day), while an
// explicit 0 means holiday/leave. A default is never written back to the store
// on the user's behalf.
type Entry struct {
	ID          string    `json:"id,omitempty"`
	UserID      string    `json:"userId"`
	Date        string    `json:"date"`
	Hours       *float64  `json:"hours,omitempty"`
	Description string    `json:"description"`
	WorkLink    string    `json:"workLink,omitempty"`
	Created     Timestamp `json:"createdAt,omitempty"`
}

// Hours builds a pointer for the Hours field.
func Hours(v float64) *float64 {
	return &v
}

// HasHours reports whether the user recorded an explicit hour count.
func (e *Entry) HasHours() bool {
	return e != nil && e.Hours != nil
}

// IsHoliday reports whether this entry marks a holiday or leave day, which is
// an explicit zero. Unrecorded hours are not a holiday.
func (e *Entry) IsHoliday() bool {
	return e.HasHours() && *e.Hours == 0
}

// Day parses the entry date. The zero time is returned for malformed dates.
func (e *Entry) Day() (time.Time, error) {
	return time.Parse(DateLayout, e.Date)
}

// DisplayDate renders the date for the UI, falling back to the raw field when
// it does not parse.
func (e *Entry) DisplayDate() string {
	d, err := e.Day()
	if err != nil {
		return e.Date
	}
	return d.Format(DisplayDateLayout)
}

// Summary is a single-line preview of the description for narrow layouts.
func (e *Entry) Summary() string {
	s := strings.TrimSpace(e.Description)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
