package loader

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"checkin-server/models"
)

const checkinsSchema = `
CREATE TABLE IF NOT EXISTS checkins (
	user_id TEXT NOT NULL,
	venue_id TEXT NOT NULL,
	venue_category_id TEXT,
	venue_category TEXT NOT NULL,
	latitude REAL NOT NULL,
	longitude REAL NOT NULL,
	timezone_offset INTEGER,
	timestamp TEXT NOT NULL
)`

const importBatchSize = 1000

// ReadCheckinsFromSQLite bulk-loads check-in records from a sqlite file
// previously produced by ImportCheckinsToSQLite.
func ReadCheckinsFromSQLite(filePath string) ([]models.CheckinRecord, error) {
	db, err := sql.Open("sqlite", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite dataset %q: %w", filePath, err)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT user_id, venue_id, venue_category_id, venue_category,
		       latitude, longitude, timezone_offset, timestamp
		FROM checkins`)
	if err != nil {
		return nil, fmt.Errorf("failed to query checkins: %w", err)
	}
	defer rows.Close()

	var records []models.CheckinRecord
	for rows.Next() {
		var r models.CheckinRecord
		var ts string
		if err := rows.Scan(&r.UserID, &r.VenueID, &r.VenueCategoryID, &r.VenueCategory,
			&r.Latitude, &r.Longitude, &r.TimezoneOffset, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan checkin row: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("bad timestamp in sqlite dataset: %w", err)
		}
		r.Timestamp = parsed.UTC()
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while reading checkins: %w", err)
	}

	log.Printf("[Loader] Read %d check-ins from %s", len(records), filePath)
	return records, nil
}

// ImportCheckinsToSQLite writes the records into a sqlite file, creating
// the checkins table if needed. Inserts run in batched transactions the
// same way the original import script committed in chunks.
func ImportCheckinsToSQLite(filePath string, records []models.CheckinRecord) error {
	db, err := sql.Open("sqlite", filePath)
	if err != nil {
		return fmt.Errorf("failed to open sqlite file %q: %w", filePath, err)
	}
	defer db.Close()

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec(checkinsSchema); err != nil {
		return fmt.Errorf("failed to create checkins table: %w", err)
	}

	for start := 0; start < len(records); start += importBatchSize {
		end := start + importBatchSize
		if end > len(records) {
			end = len(records)
		}
		if err := insertBatch(db, records[start:end]); err != nil {
			return err
		}
	}

	log.Printf("[Loader] Imported %d check-ins into %s", len(records), filePath)
	return nil
}

func insertBatch(db *sql.DB, batch []models.CheckinRecord) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO checkins
		(user_id, venue_id, venue_category_id, venue_category,
		 latitude, longitude, timezone_offset, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range batch {
		r := &batch[i]
		if _, err := stmt.Exec(r.UserID, r.VenueID, r.VenueCategoryID, r.VenueCategory,
			r.Latitude, r.Longitude, r.TimezoneOffset,
			r.Timestamp.UTC().Format(time.RFC3339)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert checkin: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import batch: %w", err)
	}
	return nil
}

// ReadCheckins picks the loader by file extension: .db/.sqlite files load
// through sqlite, everything else is treated as CSV.
func ReadCheckins(filePath string) ([]models.CheckinRecord, error) {
	if strings.HasSuffix(filePath, ".db") || strings.HasSuffix(filePath, ".sqlite") {
		return ReadCheckinsFromSQLite(filePath)
	}
	return ReadCheckinsFromCSV(filePath)
}
