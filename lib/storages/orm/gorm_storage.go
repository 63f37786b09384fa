package orm

import (
	"log"
	"os"
	"reflect"
	"sync"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/pescuma/gitweb/lib/consoles"
	"github.com/pescuma/gitweb/lib/model"
	"github.com/pescuma/gitweb/lib/storages"
)

type gormStorage struct {
	mutex   sync.RWMutex
	db      *gorm.DB
	console consoles.Console

	config *map[string]string

	sqlConfigs map[string]*sqlConfig
}

func NewGormStorage(d gorm.Dialector, console consoles.Console) (storages.Storage, error) {
	l := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(d, &gorm.Config{
		NamingStrategy: &NamingStrategy{},
		Logger:         l,
	})
	if err != nil {
		return nil, err
	}

	// :memory: databases exist only inside their connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&sqlConfig{},
		&sqlHistorySession{},
	)
	if err != nil {
		return nil, err
	}

	return &gormStorage{
		db:      db,
		console: console,
	}, nil
}

func (s *gormStorage) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}

	return db.Close()
}

func createCache[T sqlTable](rows []T) map[string]T {
	return lo.Associate(rows, func(i T) (string, T) {
		return i.CacheKey(), i
	})
}

func (s *gormStorage) LoadConfig() (*map[string]string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.config != nil {
		return s.config, nil
	}

	result := map[string]string{}

	var sqlConfigs []*sqlConfig
	err := s.db.Find(&sqlConfigs).Error
	if err != nil {
		return nil, err
	}

	s.sqlConfigs = createCache(sqlConfigs)

	for _, sc := range sqlConfigs {
		result[sc.Key] = sc.Value
	}

	s.config = &result
	return &result, nil
}

func (s *gormStorage) WriteConfig() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.config == nil {
		return nil
	}

	var sqlConfigs []*sqlConfig
	for k, v := range *s.config {
		sc := newSqlConfig(k, v)
		if prepareChange(&s.sqlConfigs, sc) {
			sqlConfigs = append(sqlConfigs, sc)
		}
	}

	var deleted []string
	for k := range s.sqlConfigs {
		if _, ok := (*s.config)[k]; !ok {
			deleted = append(deleted, k)
		}
	}

	now := time.Now().Local()
	db := s.db.Session(&gorm.Session{
		NowFunc:         func() time.Time { return now },
		CreateBatchSize: 300,
	})

	if len(sqlConfigs) > 0 {
		err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&sqlConfigs).Error
		if err != nil {
			return err
		}
	}

	if len(deleted) > 0 {
		in := clause.IN{Column: clause.Column{Name: "key"}, Values: lo.ToAnySlice(deleted)}
		err := db.Where(in).Delete(&sqlConfig{}).Error
		if err != nil {
			return err
		}

		for _, k := range deleted {
			delete(s.sqlConfigs, k)
		}
	}

	return nil
}

func (s *gormStorage) LoadHistorySession(id model.UUID) (*model.HistorySession, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var rows []*sqlHistorySession
	err := s.db.Where("id = ?", id).Limit(1).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, storages.ErrNotFound
	}

	return rows[0].ToModel(), nil
}

func (s *gormStorage) WriteHistorySession(session *model.HistorySession) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	row := newSqlHistorySession(session)

	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error
}

func (s *gormStorage) DeleteHistorySession(id model.UUID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.db.Where("id = ?", id).Delete(&sqlHistorySession{}).Error
}

func (s *gormStorage) DeleteHistorySessionsBefore(t time.Time) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	result := s.db.Where("last_seen < ?", t).Delete(&sqlHistorySession{})
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		s.console.Printf("Removed %v old history sessions\n", result.RowsAffected)
	}

	return int(result.RowsAffected), nil
}

func prepareChange[T sqlTable](byID *map[string]T, n T) bool {
	if *byID == nil {
		*byID = map[string]T{}
	}

	o, ok := (*byID)[n.CacheKey()]
	if ok {
		ro := reflect.Indirect(reflect.ValueOf(o))
		rn := reflect.Indirect(reflect.ValueOf(n))

		rn.FieldByName("CreatedAt").Set(ro.FieldByName("CreatedAt"))
		rn.FieldByName("UpdatedAt").Set(ro.FieldByName("UpdatedAt"))
	}

	if reflect.DeepEqual(n, o) {
		return false
	} else {
		(*byID)[n.CacheKey()] = n
		return true
	}
}
