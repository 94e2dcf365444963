package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidFilter = errors.New("invalid filter")

// Filter selects order lines by inclusive date window and platform. Empty fields do not filter.
type Filter struct {
	StartDate string `json:"startDate,omitempty" mapstructure:"start_date"`
	EndDate   string `json:"endDate,omitempty" mapstructure:"end_date"`
	Platform  string `json:"platform,omitempty" mapstructure:"platform"`
}

// Normalize trims whitespace and folds the "all" platform into no platform filter.
func (f Filter) Normalize() Filter {
	out := Filter{
		StartDate: strings.TrimSpace(f.StartDate),
		EndDate:   strings.TrimSpace(f.EndDate),
		Platform:  strings.TrimSpace(f.Platform),
	}
	if out.Platform == PlatformAll {
		out.Platform = ""
	}
	return out
}

func (f Filter) Validate() error {
	if err := validateDate("startDate", f.StartDate); err != nil {
		return err
	}
	return validateDate("endDate", f.EndDate)
}

// Matches reports whether an order line falls inside the window and platform.
// Dates compare as strings, so timestamps must share the YYYY-MM-DD form.
func (f Filter) Matches(o OrderLine) bool {
	if f.StartDate != "" && o.Timestamp < f.StartDate {
		return false
	}
	if f.EndDate != "" && o.Timestamp > f.EndDate {
		return false
	}
	if f.Platform != "" && f.Platform != PlatformAll && o.Platform != f.Platform {
		return false
	}
	return true
}

func validateDate(name, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return fmt.Errorf("%w: %s %q is not YYYY-MM-DD", ErrInvalidFilter, name, value)
	}
	return nil
}
