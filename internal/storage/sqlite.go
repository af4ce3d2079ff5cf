package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"

	"github.com/finchley/coppermint/internal/common"
	"github.com/finchley/coppermint/internal/service"
)

// SQLiteStorage implements the service.Storage interface using SQLite.
type SQLiteStorage struct {
	queries
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Immediate transactions take the write lock at BEGIN, so a unit of
	// work never passes a solvency check against a balance another writer
	// is about to replace.
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		queries: queries{dbtx: db},
		db:      db,
		dbPath:  dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new unit of work.
func (s *SQLiteStorage) BeginTx(ctx context.Context) (service.UnitOfWork, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &sqliteUnitOfWork{
		queries: queries{dbtx: tx},
		tx:      tx,
		storage: s,
	}, nil
}

// sqliteUnitOfWork wraps sql.Tx to implement service.UnitOfWork. All query
// methods come from the embedded queries, bound to the transaction.
type sqliteUnitOfWork struct {
	queries
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (u *sqliteUnitOfWork) Commit() error {
	return u.tx.Commit()
}

func (u *sqliteUnitOfWork) Rollback() error {
	err := u.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return err
}

// BeginTx on a unit of work is a contract violation; SQLite has no nested
// transactions.
func (u *sqliteUnitOfWork) BeginTx(_ context.Context) (service.UnitOfWork, error) {
	return nil, fmt.Errorf("transaction already in progress")
}

func (u *sqliteUnitOfWork) Migrate(_ context.Context) error {
	return fmt.Errorf("cannot migrate inside a transaction")
}

func (u *sqliteUnitOfWork) Close() error {
	return u.Rollback()
}

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx. The
// queries struct is written once against it and embedded by both the plain
// storage and the unit of work.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries holds the single implementation of every row operation.
type queries struct {
	dbtx dbtx
}

// mapConstraintErr translates SQLite uniqueness violations into the storage
// contract's sentinel so callers can resolve creation races by re-reading.
func mapConstraintErr(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %v", common.ErrDuplicateEntry, err)
	}
	return err
}
