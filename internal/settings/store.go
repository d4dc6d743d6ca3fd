package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/Adda-Baaj/newstimes/internal/logger"
)

var (
	bucketName = []byte("preferences")
	sectionKey = []byte("section")
)

// Store persists user preferences in a bbolt file.
type Store struct {
	db             *bbolt.DB
	defaultSection string
	log            logger.Logger
}

// Open opens (or creates) the preference file at path.
func Open(path, defaultSection string, log logger.Logger) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("settings path is empty")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open settings store: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init settings bucket: %w", err)
	}

	return &Store{db: db, defaultSection: defaultSection, log: log}, nil
}

// SectionFilter returns the stored section filter, or the default when unset or unreadable.
func (s *Store) SectionFilter() string {
	var value string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		if v := b.Get(sectionKey); v != nil {
			value = string(v)
		}
		return nil
	})
	if err != nil {
		s.log.WarnObj("reading section filter failed, using default", "settings_read_error", map[string]any{
			"error":   err.Error(),
			"default": s.defaultSection,
		})
		return s.defaultSection
	}

	if value == "" {
		return s.defaultSection
	}
	return value
}

// SetSectionFilter stores section. The value is not validated.
func (s *Store) SetSectionFilter(section string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		return b.Put(sectionKey, []byte(section))
	})
}

// ResetSectionFilter removes the stored value so the default applies again.
func (s *Store) ResetSectionFilter() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		return b.Delete(sectionKey)
	})
}

// DefaultSection returns the configured fallback.
func (s *Store) DefaultSection() string {
	return s.defaultSection
}

// Close releases the underlying file.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
