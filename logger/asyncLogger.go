package logger

import (
	"log"

	log_model "coolie-booking/models/log"
	"coolie-booking/types"

	"gorm.io/gorm"
)

// AsyncLogger persists request logs from a background goroutine so the
// request path never waits on the logs table.
type AsyncLogger struct {
	db      *gorm.DB
	channel chan types.LogEntry
}

func NewAsyncLogger(db *gorm.DB) *AsyncLogger {
	return &AsyncLogger{
		db:      db,
		channel: make(chan types.LogEntry, 100), // Buffered channel to hold log entries
	}
}

func (logger *AsyncLogger) ProcessLog() {
	log.Println("Starting asynchronous request logger...")

	for logEntry := range logger.channel {
		dbLog := log_model.Log{
			Method:       logEntry.Method,
			URL:          logEntry.URL,
			RequestBody:  logEntry.RequestBody,
			ResponseBody: logEntry.ResponseBody,
			StatusCode:   logEntry.StatusCode,
			UserID:       logEntry.UserID,
			CreatedAt:    logEntry.CreatedAt,
		}

		if err := logger.db.Create(&dbLog).Error; err != nil {
			log.Printf("Failed to insert request log entry: %v", err)
		}
	}
}

// Log pushes a log entry into the channel. Entries are dropped when the
// buffer is full rather than blocking the request.
func (logger *AsyncLogger) Log(entry types.LogEntry) {
	select {
	case logger.channel <- entry:
	default:
	}
}
