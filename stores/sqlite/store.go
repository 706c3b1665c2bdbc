package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

type sqliteStore struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database and its items table.
func NewStore(dataSourceName string) (*sqliteStore, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	itemsTableStmt := `
	CREATE TABLE IF NOT EXISTS items (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME
	);`
	if _, err = db.Exec(itemsTableStmt); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create items table: %w", err)
	}

	return &sqliteStore{db}, nil
}

// Close releases the underlying database handle.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func (s *sqliteStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	log := logrus.WithField("key", key)
	log.Debug("Retrieving item")

	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM items WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Debug("Item not found")
			return "", false, nil
		}
		log.WithError(err).Error("Failed to retrieve item")
		return "", false, err
	}
	return value, true, nil
}

func (s *sqliteStore) SetItem(ctx context.Context, key, value string) error {
	log := logrus.WithFields(logrus.Fields{
		"key":          key,
		"value_length": len(value),
	})

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO items (key, value, updated_at) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at",
		key, value, time.Now().UTC())
	if err != nil {
		log.WithError(err).Error("Failed to save item")
		return err
	}
	log.Debug("Item saved successfully")
	return nil
}

func (s *sqliteStore) RemoveItem(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE key = ?", key)
	if err != nil {
		logrus.WithField("key", key).WithError(err).Error("Failed to remove item")
	}
	return err
}
