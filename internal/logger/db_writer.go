package logger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to the worker
type LogEntry struct {
	Level      zapcore.Level
	Message    string
	Caller     string
	RequestID  string
	UserID     string
	ReportType string
	Error      string
}

// LogRecord is the document stored in the logs collection
type LogRecord struct {
	AppId        string    `bson:"app_id" json:"app_id"`
	Level        string    `bson:"level" json:"level"`
	LogLevelId   int       `bson:"log_level_id" json:"log_level_id"`
	Message      string    `bson:"message" json:"message"`
	Caller       string    `bson:"caller,omitempty" json:"caller,omitempty"`
	RequestID    string    `bson:"request_id,omitempty" json:"request_id,omitempty"`
	UserID       string    `bson:"user_id,omitempty" json:"user_id,omitempty"`
	ReportType   string    `bson:"report_type,omitempty" json:"report_type,omitempty"`
	Error        string    `bson:"error,omitempty" json:"error,omitempty"`
	CreatedOnUtc time.Time `bson:"created_on_utc" json:"created_on_utc"`
}

// LogInserter is the part of *mongo.Collection the writer needs.
type LogInserter interface {
	InsertOne(ctx context.Context, document interface{}) error
}

// DBLogWriter handles the async writing
type DBLogWriter struct {
	sink    LogInserter
	logChan chan LogEntry
	appId   string
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewDBLogWriter initializes the worker and starts it immediately
func NewDBLogWriter(sink LogInserter, appId string, buffer int) *DBLogWriter {
	writer := &DBLogWriter{
		sink:    sink,
		logChan: make(chan LogEntry, buffer),
		appId:   appId,
		done:    make(chan struct{}),
	}

	go writer.processLogs()

	return writer
}

// AddLog is called by the Zap core. It never blocks the request path.
// Entries logged after Close are dropped.
func (w *DBLogWriter) AddLog(entry LogEntry) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return
	}
	select {
	case w.logChan <- entry:
	default:
		fmt.Println("DB Log Channel Full! Dropping log:", entry.Message)
	}
}

// Close stops accepting entries and waits for the buffered ones to be written.
func (w *DBLogWriter) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.logChan)
	}
	w.mu.Unlock()
	<-w.done
}

func (w *DBLogWriter) processLogs() {
	defer close(w.done)
	for entry := range w.logChan {
		record := LogRecord{
			AppId:        w.appId,
			Level:        entry.Level.String(),
			LogLevelId:   mapLevelToInt(entry.Level),
			Message:      entry.Message,
			Caller:       entry.Caller,
			RequestID:    entry.RequestID,
			UserID:       entry.UserID,
			ReportType:   entry.ReportType,
			Error:        entry.Error,
			CreatedOnUtc: time.Now().UTC(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		// Errors are ignored to keep the app running
		_ = w.sink.InsertOne(ctx, record)
		cancel()
	}
}

func mapLevelToInt(l zapcore.Level) int {
	switch l {
	case zapcore.DebugLevel:
		return 10
	case zapcore.InfoLevel:
		return 20
	case zapcore.WarnLevel:
		return 30
	case zapcore.ErrorLevel:
		return 40
	case zapcore.FatalLevel:
		return 50
	default:
		return 20
	}
}
