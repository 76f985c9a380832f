package render

import (
	"fmt"
	"time"

	"github.com/itchyny/timefmt-go"
)

// layouts accepted when a date arrives as text, e.g. from the configuration.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999 -07:00",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Strftime formats a date with a strftime-style format such as "%d.%m.%Y".
func Strftime(value interface{}, format string) (string, error) {
	t, err := toTime(value)
	if err != nil {
		return "", err
	}
	return timefmt.Format(t, format), nil
}

// Strptime parses text with a strftime-style format.
func Strptime(text, format string) (time.Time, error) {
	t, err := timefmt.Parse(text, format)
	if err != nil {
		return time.Time{}, fmt.Errorf("strptime: %w", err)
	}
	return t, nil
}

func toTime(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v != nil {
			return *v, nil
		}
	case string:
		for _, layout := range layouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("strftime: cannot read %q as a date", v)
	}
	return time.Time{}, fmt.Errorf("strftime: %T is not a date", value)
}
