package vtt

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTimestamp converts a caption timestamp of the form [H:]MM:SS.mmm into
// seconds. Hours are optional and default to zero.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	main, millisText, ok := strings.Cut(value, ".")
	if !ok {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}

	parts := strings.Split(main, ":")
	var hours, minutes, seconds int
	var err error
	switch len(parts) {
	case 3:
		if hours, err = strconv.Atoi(parts[0]); err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		if minutes, err = strconv.Atoi(parts[1]); err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		if seconds, err = strconv.Atoi(parts[2]); err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
	case 2:
		if minutes, err = strconv.Atoi(parts[0]); err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		if seconds, err = strconv.Atoi(parts[1]); err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
	default:
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}

	millis, err := strconv.Atoi(millisText)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if hours < 0 || minutes < 0 || seconds < 0 || millis < 0 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}

	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
