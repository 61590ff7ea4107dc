package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// sink is the buffer shared by a TestLogger and every logger derived from
// it with With.
type sink struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// TestLogger records each entry as one JSON line so tests can assert on
// the messages and fields a driver emitted. Numbers come back as float64
// after the JSON round trip. Safe for use from worker goroutines.
type TestLogger struct {
	out    *sink
	level  Level
	fields map[string]interface{}
}

// NewTestLogger returns a logger that keeps entries at or above level, and
// the buffer they are written to.
//
//	logger, _ := log.NewTestLogger(log.LevelDebug)
//	binner := binning.NewBinner(params.Default()).WithLogger(logger)
//	...
//	assert.True(t, logger.ContainsField(log.FeatureKey, float64(2)))
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	s := &sink{}
	return &TestLogger{out: s, level: level, fields: map[string]interface{}{}}, &s.buf
}

func (t *TestLogger) Debug(msg string, fields ...any) { t.record(LevelDebug, msg, fields) }
func (t *TestLogger) Info(msg string, fields ...any)  { t.record(LevelInfo, msg, fields) }
func (t *TestLogger) Warn(msg string, fields ...any)  { t.record(LevelWarn, msg, fields) }
func (t *TestLogger) Error(msg string, fields ...any) { t.record(LevelError, msg, fields) }

func (t *TestLogger) With(fields ...any) Logger {
	merged := make(map[string]interface{}, len(t.fields)+len(fields)/2)
	for k, v := range t.fields {
		merged[k] = v
	}
	putPairs(merged, fields)
	return &TestLogger{out: t.out, level: t.level, fields: merged}
}

func (t *TestLogger) Enabled(_ context.Context, level Level) bool {
	return level >= t.level
}

func (t *TestLogger) record(level Level, msg string, fields []any) {
	if level < t.level {
		return
	}
	entry := make(map[string]interface{}, len(t.fields)+len(fields)/2+2)
	for k, v := range t.fields {
		entry[k] = v
	}
	// A leading error with an odd field count is the record's error.
	if len(fields)%2 == 1 {
		if err, ok := fields[0].(error); ok {
			entry["error"] = err.Error()
			fields = fields[1:]
		}
	}
	putPairs(entry, fields)
	entry["level"] = level.String()
	entry["message"] = msg

	line, err := json.Marshal(entry)
	if err != nil {
		line = []byte(fmt.Sprintf(`{"level":%q,"message":%q,"marshal_error":%q}`, level.String(), msg, err.Error()))
	}
	t.out.mu.Lock()
	t.out.buf.Write(line)
	t.out.buf.WriteByte('\n')
	t.out.mu.Unlock()
}

// putPairs stores alternating key/value pairs in dst. Errors are stored as
// their message; a trailing key without a value is dropped.
func putPairs(dst map[string]interface{}, fields []any) {
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		if err, ok := fields[i+1].(error); ok {
			dst[key] = err.Error()
			continue
		}
		dst[key] = fields[i+1]
	}
}

// GetBuffer returns the underlying buffer. Reading it while loggers are
// still writing is the caller's responsibility.
func (t *TestLogger) GetBuffer() *bytes.Buffer {
	return &t.out.buf
}

// GetLogEntries decodes every captured line.
func (t *TestLogger) GetLogEntries() ([]map[string]interface{}, error) {
	t.out.mu.Lock()
	raw := t.out.buf.String()
	t.out.mu.Unlock()

	var entries []map[string]interface{}
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ContainsMessage reports whether any captured output contains message.
func (t *TestLogger) ContainsMessage(message string) bool {
	t.out.mu.Lock()
	defer t.out.mu.Unlock()
	return strings.Contains(t.out.buf.String(), message)
}

// ContainsField reports whether some entry has key set to value, compared
// after the JSON round trip.
func (t *TestLogger) ContainsField(key string, value interface{}) bool {
	entries, err := t.GetLogEntries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if v, ok := entry[key]; ok && v == value {
			return true
		}
	}
	return false
}

// Clear drops everything captured so far.
func (t *TestLogger) Clear() {
	t.out.mu.Lock()
	t.out.buf.Reset()
	t.out.mu.Unlock()
}
