package domain

import (
	"bytes"
	"fmt"
	"time"

	gojson "github.com/goccy/go-json"
)

// WireTime decodes the two timestamp encodings the API emits: the Spring
// LocalDateTime array form [year,month,day,hour,minute,second,nano] and
// plain ISO-8601 strings. It marshals back as RFC 3339.
type WireTime struct {
	time.Time
}

func (t WireTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return gojson.Marshal(t.Format(time.RFC3339))
}

func (t *WireTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	if data[0] == '[' {
		var parts []int
		if err := gojson.Unmarshal(data, &parts); err != nil {
			return fmt.Errorf("wire time: %w", err)
		}
		if len(parts) < 3 {
			return fmt.Errorf("wire time: array has %d elements, want at least 3", len(parts))
		}
		// Pad missing trailing components with zeros.
		full := make([]int, 7)
		copy(full, parts)
		t.Time = time.Date(full[0], time.Month(full[1]), full[2], full[3], full[4], full[5], full[6], time.UTC)
		return nil
	}

	var s string
	if err := gojson.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("wire time: %w", err)
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("wire time: unsupported timestamp %q", s)
}
