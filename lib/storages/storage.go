package storages

import (
	"time"

	"github.com/pkg/errors"

	"github.com/pescuma/gitweb/lib/model"
)

var ErrNotFound = errors.New("not found")

type Storage interface {
	LoadConfig() (*map[string]string, error)
	WriteConfig() error

	LoadHistorySession(id model.UUID) (*model.HistorySession, error)
	WriteHistorySession(session *model.HistorySession) error
	DeleteHistorySession(id model.UUID) error
	// DeleteHistorySessionsBefore removes sessions not used since the given time.
	DeleteHistorySessionsBefore(t time.Time) (int, error)

	Close() error
}
