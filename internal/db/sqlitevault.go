//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"github.com/e-gun/VerseAnalytics/internal/vv"
	_ "modernc.org/sqlite"
	"os"
	"path/filepath"
	"regexp"
)

var (
	tablename = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// SQLiteVault - a single-file vault; pure Go, so no cgo toolchain is needed
type SQLiteVault struct {
	db    *sql.DB
	table string
	fn    string
}

// OpenSQLiteVault - open (or create) the vault file and its table
func OpenSQLiteVault(fn string, table string) (*SQLiteVault, error) {
	const (
		CREATE = `
			CREATE TABLE IF NOT EXISTS %s
			(
			  fingerprint TEXT PRIMARY KEY,
			  kind        TEXT,
			  datasize    INTEGER,
			  data        BLOB
			)`
		MSG1 = "OpenSQLiteVault(): %s"
		FAIL = "OpenSQLiteVault() could not open '%s': %w"
	)

	if table == "" {
		table = vv.VAULTTABLE
	}
	if !tablename.MatchString(table) {
		return nil, fmt.Errorf(FAIL, fn, fmt.Errorf("%w: bad table name '%s'", str.ErrInvalidInput, table))
	}

	if fn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(fn), vv.DIRPERMS); err != nil {
			return nil, fmt.Errorf(FAIL, fn, err)
		}
	}

	sdb, err := sql.Open("sqlite", fn)
	if err != nil {
		return nil, fmt.Errorf(FAIL, fn, err)
	}
	// one writer at a time; ":memory:" also needs the single connection to survive between calls
	sdb.SetMaxOpenConns(1)

	if _, err = sdb.Exec(fmt.Sprintf(CREATE, table)); err != nil {
		_ = sdb.Close()
		return nil, fmt.Errorf(FAIL, fn, err)
	}

	Msg.TMI(fmt.Sprintf(MSG1, fn))
	return &SQLiteVault{db: sdb, table: table, fn: fn}, nil
}

// Check - has something with this fingerprint already been stored?
func (v *SQLiteVault) Check(fp string) bool {
	const (
		Q = `SELECT fingerprint FROM %s WHERE fingerprint = ? LIMIT 1`
		F = `SQLiteVault.Check() found %s`
	)
	var found string
	err := v.db.QueryRow(fmt.Sprintf(Q, v.table), fp).Scan(&found)
	if err != nil {
		return false
	}
	Msg.TMI(fmt.Sprintf(F, found))
	return true
}

// Add - store v under fp, replacing whatever was there
func (v *SQLiteVault) Add(fp string, kind string, val any) error {
	const (
		INS  = `INSERT OR REPLACE INTO %s (fingerprint, kind, datasize, data) VALUES (?, ?, ?, ?)`
		MSG1 = "SQLiteVault.Add(): %s (%s, %d bytes)"
		FAIL = "SQLiteVault.Add() stored nothing for %s: %w"
	)

	b, err := pack(val)
	if err != nil {
		return fmt.Errorf(FAIL, fp, err)
	}
	if _, err = v.db.Exec(fmt.Sprintf(INS, v.table), fp, kind, len(b), b); err != nil {
		return fmt.Errorf(FAIL, fp, err)
	}
	Msg.TMI(fmt.Sprintf(MSG1, fp, kind, len(b)))
	return nil
}

// Fetch - unpack the blob stored under fp into val
func (v *SQLiteVault) Fetch(fp string, val any) error {
	const (
		Q    = `SELECT data FROM %s WHERE fingerprint = ? LIMIT 1`
		FAIL = "SQLiteVault.Fetch() failed for %s: %w"
	)

	var blob []byte
	err := v.db.QueryRow(fmt.Sprintf(Q, v.table), fp).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotInVault, fp)
	}
	if err != nil {
		return fmt.Errorf(FAIL, fp, err)
	}
	if err = unpack(blob, val); err != nil {
		return fmt.Errorf(FAIL, fp, err)
	}
	return nil
}

// Reset - empty the vault
func (v *SQLiteVault) Reset() error {
	const (
		E    = `DELETE FROM %s`
		MSG1 = "SQLiteVault.Reset() emptied %s in %s"
	)
	if _, err := v.db.Exec(fmt.Sprintf(E, v.table)); err != nil {
		return err
	}
	Msg.NOTE(fmt.Sprintf(MSG1, v.table, v.fn))
	return nil
}

// Count - number of stored items and their compressed size
func (v *SQLiteVault) Count() (int, int64, error) {
	const (
		Q = `SELECT COUNT(*), COALESCE(SUM(datasize), 0) FROM %s`
	)
	var n int
	var size int64
	err := v.db.QueryRow(fmt.Sprintf(Q, v.table)).Scan(&n, &size)
	return n, size, err
}

func (v *SQLiteVault) Close() error {
	return v.db.Close()
}
