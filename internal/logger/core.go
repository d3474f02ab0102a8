package logger

import (
	"go.uber.org/zap/zapcore"
)

// DBCore is a Zap core that tees entries at or above minLevel to the DB writer
type DBCore struct {
	zapcore.Core
	writer   *DBLogWriter
	minLevel zapcore.Level
	fields   []zapcore.Field
}

// NewDBCore wraps an existing core (like console logger) and adds DB logging
func NewDBCore(baseCore zapcore.Core, writer *DBLogWriter, minLevel zapcore.Level) zapcore.Core {
	return &DBCore{
		Core:     baseCore,
		writer:   writer,
		minLevel: minLevel,
	}
}

// With keeps fields attached through logger.With so they reach the DB entry too
func (c *DBCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &DBCore{
		Core:     c.Core.With(fields),
		writer:   c.writer,
		minLevel: c.minLevel,
		fields:   merged,
	}
}

// Write is called for every log entry
func (c *DBCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if entry.Level >= c.minLevel {
		out := LogEntry{
			Level:   entry.Level,
			Message: entry.Message,
			Caller:  entry.Caller.Function,
		}
		for _, f := range append(c.fields, fields...) {
			switch f.Key {
			case "request_id":
				out.RequestID = f.String
			case "user_id":
				out.UserID = f.String
			case "report_type":
				out.ReportType = f.String
			case "error":
				if err, ok := f.Interface.(error); ok {
					out.Error = err.Error()
				}
			}
		}
		c.writer.AddLog(out)
	}

	// Call the underlying core so it still prints to the console
	return c.Core.Write(entry, fields)
}

// Check decides if we should log this level
func (c *DBCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}
