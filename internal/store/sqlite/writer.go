// Package sqlite persists and loads candle history. Candles are the only
// thing stored: trade history intentionally does not survive restarts.
package sqlite

import (
	"database/sql"
	"fmt"
	"log"

	"signal-systemv1/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// Writer inserts candles with transaction batching.
type Writer struct {
	db *sql.DB
}

// NewWriter opens (and if necessary creates) the database at dbPath with
// WAL mode and the candle schema.
func NewWriter(dbPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	log.Printf("[sqlite] opened database at %s", dbPath)
	return &Writer{db: db}, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS candles (
			symbol  TEXT    NOT NULL,
			ts      INTEGER NOT NULL,
			open    REAL    NOT NULL,
			high    REAL    NOT NULL,
			low     REAL    NOT NULL,
			close   REAL    NOT NULL,
			volume  INTEGER NOT NULL,
			PRIMARY KEY (symbol, ts)
		);
		CREATE INDEX IF NOT EXISTS idx_candles_ts ON candles (ts);
	`)
	return err
}

// WriteSeries inserts the series for a symbol in one transaction.
// Existing rows with the same (symbol, ts) are replaced.
func (w *Writer) WriteSeries(symbol string, series model.Series) error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite begin: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO candles (symbol, ts, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("sqlite prepare: %w", err)
	}
	defer stmt.Close()

	for _, c := range series {
		if _, err := stmt.Exec(symbol, c.TS.Unix(), c.Open, c.High, c.Low, c.Close, c.Volume); err != nil {
			tx.Rollback()
			return fmt.Errorf("sqlite insert candle: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite commit: %w", err)
	}

	log.Printf("[sqlite] wrote %d candles for %s", len(series), symbol)
	return nil
}

// Close closes the writer.
func (w *Writer) Close() error {
	return w.db.Close()
}
