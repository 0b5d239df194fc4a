package log

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Formatter renders an Entry to a single line of output text.
type Formatter interface {
	Format(Entry) string
}

// TextFormatter renders "time level message key=value ...", the shape
// the teacher's own formatter produces.
type TextFormatter struct{}

func (TextFormatter) Format(e Entry) string {
	var b strings.Builder
	b.WriteString(e.Time.Format("2006-01-02T15:04:05.000Z07:00"))
	b.WriteByte(' ')
	b.WriteString(e.Level.String())
	b.WriteByte(' ')
	b.WriteString(e.Message)
	for _, f := range e.Fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}

// JSONFormatter renders each entry as a single JSON object per line.
type JSONFormatter struct{}

func (JSONFormatter) Format(e Entry) string {
	obj := map[string]interface{}{
		"time":    e.Time.Format("2006-01-02T15:04:05.000Z07:00"),
		"level":   e.Level.String(),
		"message": e.Message,
	}
	for _, f := range e.Fields {
		obj[f.Key] = f.Value
	}
	out, err := json.Marshal(obj)
	if err != nil {
		return e.Message
	}
	return string(out)
}
