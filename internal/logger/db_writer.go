package logger

import (
	"context"
	"fmt"
	"time"

	"go-marketplace/internal/config"
	"go-marketplace/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to the background worker
type LogEntry struct {
	Level   zapcore.Level
	Message string
	UserID  string
	Caller  string
}

// LogRecord is the shape stored in the logs collection
type LogRecord struct {
	AppId        string    `bson:"app_id"`
	Message      string    `bson:"message"`
	UserID       string    `bson:"user_id,omitempty"`
	Caller       string    `bson:"caller,omitempty"`
	Level        string    `bson:"level"`
	CreatedOnUtc time.Time `bson:"created_on_utc"`
}

// DBLogWriter handles the async writing
type DBLogWriter struct {
	db      *mongo.Database
	logChan chan LogEntry
	appId   string
}

// NewDBLogWriter initializes the worker
func NewDBLogWriter(mongodb *database.MongodbDB, cfg *config.Config) *DBLogWriter {
	writer := &DBLogWriter{
		db:      mongodb.DB,
		logChan: make(chan LogEntry, 1000),
		appId:   cfg.AppId,
	}

	go writer.processLogs()

	return writer
}

// AddLog is called by the zap core hook
func (w *DBLogWriter) AddLog(entry LogEntry) {
	select {
	case w.logChan <- entry:
	default:
		// Channel full: drop rather than block the request path
		fmt.Println("DB Log Channel Full! Dropping log:", entry.Message)
	}
}

func (w *DBLogWriter) processLogs() {
	for entry := range w.logChan {
		record := LogRecord{
			AppId:        w.appId,
			Message:      entry.Message,
			UserID:       entry.UserID,
			Caller:       entry.Caller,
			Level:        entry.Level.String(),
			CreatedOnUtc: time.Now().UTC(),
		}

		// Errors are ignored to keep the app running
		w.db.Collection("logs").InsertOne(context.Background(), record)
	}
}
