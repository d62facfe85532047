package types

import (
	"bytes"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// unixLayout формат, в который переводятся unix seconds из JSON числа
const unixLayout = "2006-01-02T15:04:05"

// DateTimeInput время начала из JSON: строка как есть или целое число unix seconds.
// Число переводится в "YYYY-MM-DDTHH:MM:SS" (UTC), остальные значения сохраняются
// сырыми и отклоняются при разборе
type DateTimeInput string

// UnmarshalJSON реализует json.Unmarshaler
func (d *DateTimeInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = DateTimeInput(s)
		return nil
	}

	if seconds, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		*d = DateTimeInput(time.Unix(seconds, 0).UTC().Format(unixLayout))
		return nil
	}

	*d = DateTimeInput(data)
	return nil
}

func (d DateTimeInput) String() string {
	return string(d)
}
