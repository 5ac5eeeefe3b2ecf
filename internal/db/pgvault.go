//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"errors"
	"fmt"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"github.com/e-gun/VerseAnalytics/internal/vv"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// PGVault - the same vault kept in PostgreSQL so several machines can share fitted models
type PGVault struct {
	pool  *pgxpool.Pool
	table string
}

// PoolURL - the connection string for the vault's pool; credentials are escaped
func PoolURL(pl str.PostgresLogin, mn int, mx int) string {
	const (
		QTPL = "pool_min_conns=%d&pool_max_conns=%d"
	)
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(pl.User, pl.Pass),
		Host:     net.JoinHostPort(pl.Host, strconv.Itoa(pl.Port)),
		Path:     "/" + pl.DBName,
		RawQuery: fmt.Sprintf(QTPL, mn, mx),
	}
	return u.String()
}

// OpenPGVault - build the pgxpool and make sure the vault table exists
func OpenPGVault(pl str.PostgresLogin, table string) (*PGVault, error) {
	const (
		CREATE = `
			CREATE TABLE IF NOT EXISTS %s
			(
			  fingerprint character(32) PRIMARY KEY,
			  kind        text,
			  datasize    int,
			  data        bytea
			)`
		FAIL1   = "OpenPGVault(): configuration error; could not parse the connection string for %s@%s: %w"
		FAIL2   = "OpenPGVault(): could not connect to PostgreSQL: %w"
		ERRRUN  = `dial error`
		FAILRUN = `the PostgreSQL server cannot be found; check that it is running and serving on port %d`
		ERRSRV  = `server error`
		FAILSRV = `there is configuration problem; see the following response from PostgreSQL:`
	)

	if table == "" {
		table = vv.VAULTTABLE
	}
	if !tablename.MatchString(table) {
		return nil, fmt.Errorf("%w: bad table name '%s'", str.ErrInvalidInput, table)
	}

	config, err := pgxpool.ParseConfig(PoolURL(pl, vv.PGPOOLMIN, vv.PGPOOLMAX))
	if err != nil {
		// do not echo the url: it carries the password
		return nil, fmt.Errorf(FAIL1, pl.User, pl.Host, err)
	}

	ctx := context.Background()
	thepool, err := pgxpool.NewWithConfig(ctx, config)
	if err == nil {
		err = thepool.Ping(ctx)
	}
	if err != nil {
		if strings.Contains(err.Error(), ERRRUN) {
			Msg.CRIT(fmt.Sprintf(FAILRUN, pl.Port))
		}
		if strings.Contains(err.Error(), ERRSRV) {
			Msg.CRIT(FAILSRV)
			Msg.CRIT(err.Error())
		}
		if thepool != nil {
			thepool.Close()
		}
		return nil, fmt.Errorf(FAIL2, err)
	}

	if _, err = thepool.Exec(ctx, fmt.Sprintf(CREATE, table)); err != nil {
		thepool.Close()
		return nil, fmt.Errorf(FAIL2, err)
	}
	return &PGVault{pool: thepool, table: table}, nil
}

// Check - has something with this fingerprint already been stored?
func (v *PGVault) Check(fp string) bool {
	const (
		Q = `SELECT fingerprint FROM %s WHERE fingerprint = $1 LIMIT 1`
		F = `PGVault.Check() found %s`
	)

	foundrow, err := v.pool.Query(context.Background(), fmt.Sprintf(Q, v.table), fp)
	if err != nil {
		return false
	}

	type simplestring struct {
		S string
	}

	ss, err := pgx.CollectOneRow(foundrow, pgx.RowToStructByPos[simplestring])
	if err != nil {
		// "no rows in result set" if the fingerprint is absent
		return false
	}
	Msg.TMI(fmt.Sprintf(F, ss.S))
	return true
}

// Add - store val under fp, replacing whatever was there
func (v *PGVault) Add(fp string, kind string, val any) error {
	const (
		INS = `
			INSERT INTO %s
				(fingerprint, kind, datasize, data)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (fingerprint) DO UPDATE
				SET kind = EXCLUDED.kind, datasize = EXCLUDED.datasize, data = EXCLUDED.data`
		MSG1 = "PGVault.Add(): %s (%s, %d bytes)"
		FAIL = "PGVault.Add() stored nothing for %s: %w"
	)

	b, err := pack(val)
	if err != nil {
		return fmt.Errorf(FAIL, fp, err)
	}
	if _, err = v.pool.Exec(context.Background(), fmt.Sprintf(INS, v.table), fp, kind, len(b), b); err != nil {
		return fmt.Errorf(FAIL, fp, err)
	}
	Msg.TMI(fmt.Sprintf(MSG1, fp, kind, len(b)))
	return nil
}

// Fetch - unpack the blob stored under fp into val
func (v *PGVault) Fetch(fp string, val any) error {
	const (
		Q    = `SELECT data FROM %s WHERE fingerprint = $1 LIMIT 1`
		FAIL = "PGVault.Fetch() failed for %s: %w"
	)

	var blob []byte
	err := v.pool.QueryRow(context.Background(), fmt.Sprintf(Q, v.table), fp).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
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
func (v *PGVault) Reset() error {
	const (
		E    = `TRUNCATE TABLE %s`
		MSG1 = "PGVault.Reset() emptied %s"
	)
	if _, err := v.pool.Exec(context.Background(), fmt.Sprintf(E, v.table)); err != nil {
		return err
	}
	Msg.NOTE(fmt.Sprintf(MSG1, v.table))
	return nil
}

func (v *PGVault) Close() error {
	v.pool.Close()
	return nil
}
