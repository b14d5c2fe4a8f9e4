package db

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

func NewSQLLite(dbpath string) (*SQLLiteDB, error) {
	rawDB, err := sql.Open("sqlite3", dbpath)
	return &SQLLiteDB{rawDB: rawDB}, err
}

type SQLLiteDB struct {
	rawDB *sql.DB
}

func (db *SQLLiteDB) runStatement(sql string) (sql.Result, error) {
	statement, err := db.rawDB.Prepare(sql)
	if err != nil {
		return nil, err
	}
	result, err := statement.Exec()
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (db *SQLLiteDB) Init() (err error) {
	_, err = db.runStatement(
		"CREATE TABLE IF NOT EXISTS digests (" +
			"dir TEXT NOT NULL, " +
			"path TEXT NOT NULL, " +
			"digest TEXT NOT NULL, " +
			"UNIQUE(dir, path)" +
			")")
	if err != nil {
		return err
	}
	log.Debug().Msg("digest table initialised")
	return nil
}

func (db *SQLLiteDB) LoadDigests(dir string) (map[string]string, error) {
	rows, err := db.rawDB.Query("SELECT path, digest FROM digests WHERE dir=?", dir)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	digests := make(map[string]string)
	for rows.Next() {
		var path, digest string
		if err := rows.Scan(&path, &digest); err != nil {
			return nil, err
		}
		digests[path] = digest
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	log.Debug().Str("dir", dir).Int("entries", len(digests)).Msg("loaded digests")
	return digests, nil
}

// SaveDigests replaces the record set for a collect directory in one
// transaction.
func (db *SQLLiteDB) SaveDigests(dir string, digests map[string]string) error {
	tx, err := db.rawDB.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM digests WHERE dir=?", dir); err != nil {
		tx.Rollback()
		return err
	}
	for path, digest := range digests {
		if _, err := tx.Exec("INSERT INTO digests (dir, path, digest) VALUES(?, ?, ?)", dir, path, digest); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug().Str("dir", dir).Int("entries", len(digests)).Msg("saved digests")
	return nil
}

func (db *SQLLiteDB) ClearDigests(dir string) error {
	_, err := db.rawDB.Exec("DELETE FROM digests WHERE dir=?", dir)
	return err
}

func (db *SQLLiteDB) ClearAll() error {
	_, err := db.rawDB.Exec("DELETE FROM digests")
	return err
}

func (db *SQLLiteDB) Close() error {
	return db.rawDB.Close()
}
