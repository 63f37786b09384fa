package orm

import (
	"time"

	"github.com/pescuma/gitweb/lib/model"
)

type sqlTable interface {
	CacheKey() string
}

type sqlConfig struct {
	Key   string `gorm:"primaryKey"`
	Value string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newSqlConfig(k string, v string) *sqlConfig {
	return &sqlConfig{
		Key:   k,
		Value: v,
	}
}

func (s *sqlConfig) CacheKey() string {
	return s.Key
}

type sqlHistorySession struct {
	ID      model.UUID `gorm:"primaryKey"`
	RootDir string
	Ref     string
	NextRef string
	Loaded  int
	State   []byte

	LastSeen time.Time `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newSqlHistorySession(s *model.HistorySession) *sqlHistorySession {
	return &sqlHistorySession{
		ID:       s.ID,
		RootDir:  s.RootDir,
		Ref:      s.Ref,
		NextRef:  s.NextRef,
		Loaded:   s.Loaded,
		State:    cloneBytes(s.State),
		LastSeen: s.LastSeen,
	}
}

func (s *sqlHistorySession) ToModel() *model.HistorySession {
	return &model.HistorySession{
		ID:       s.ID,
		RootDir:  s.RootDir,
		Ref:      s.Ref,
		NextRef:  s.NextRef,
		Loaded:   s.Loaded,
		State:    cloneBytes(s.State),
		LastSeen: s.LastSeen,
	}
}

func (s *sqlHistorySession) CacheKey() string {
	return string(s.ID)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}

	result := make([]byte, len(b))
	copy(result, b)
	return result
}
