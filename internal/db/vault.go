//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"io"
	"path/filepath"
)

const (
	VAULTNONE     = "none"
	VAULTSQLITE   = "sqlite"
	VAULTPOSTGRES = "postgres"

	KINDCORPUS = "corpus"
	KINDMODEL  = "model"
)

var (
	ErrNotInVault = errors.New("fingerprint not in vault")
)

// Vault - gzipped JSON blobs keyed by an md5 fingerprint of whatever produced them
type Vault interface {
	Check(fp string) bool
	Add(fp string, kind string, v any) error
	Fetch(fp string, v any) error
	Reset() error
	Close() error
}

// OpenVault - pick the backend named in the configuration; a relative sqlite file lives in the output directory
func OpenVault(vc str.VaultConfig, outdir string) (Vault, error) {
	const (
		FAIL = "%w: unknown vault kind '%s'"
	)

	switch vc.Kind {
	case VAULTNONE, "":
		return NoVault{}, nil
	case VAULTSQLITE:
		fn := vc.File
		if !filepath.IsAbs(fn) {
			fn = filepath.Join(outdir, fn)
		}
		v, err := OpenSQLiteVault(fn, vc.Table)
		if err != nil {
			return nil, err
		}
		return v, nil
	case VAULTPOSTGRES:
		v, err := OpenPGVault(vc.PGLogin, vc.Table)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf(FAIL, str.ErrInvalidInput, vc.Kind)
	}
}

// NoVault - remembers nothing
type NoVault struct{}

func (NoVault) Check(string) bool { return false }
func (NoVault) Add(string, string, any) error { return nil }
func (NoVault) Fetch(fp string, _ any) error { return fmt.Errorf("%w: %s", ErrNotInVault, fp) }
func (NoVault) Reset() error { return nil }
func (NoVault) Close() error { return nil }

// pack - json then gzip
func pack(v any) ([]byte, error) {
	const (
		GZ = gzip.BestSpeed
	)

	eb, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, GZ)
	if err != nil {
		return nil, err
	}
	if _, err = zw.Write(eb); err != nil {
		return nil, err
	}
	if err = zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unpack - the data in the tables is zipped and needs unzipping
func unpack(b []byte, v any) error {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return err
	}
	decompr, err := io.ReadAll(zr)
	if err != nil {
		return err
	}
	if err = zr.Close(); err != nil {
		return err
	}
	return json.Unmarshal(decompr, v)
}
