package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type nopDriver struct{}

func (d nopDriver) Open(name string) (driver.Conn, error) {
	return nopConn{}, nil
}

type nopConn struct{}

func (nopConn) Prepare(query string) (driver.Stmt, error) { return nopStmt{}, nil }
func (nopConn) Close() error                              { return nil }
func (nopConn) Begin() (driver.Tx, error)                 { return nopTx{}, nil }
func (nopConn) Ping(ctx context.Context) error            { return nil }

type nopStmt struct{}

func (nopStmt) Close() error                                   { return nil }
func (nopStmt) NumInput() int                                  { return -1 }
func (nopStmt) Exec(args []driver.Value) (driver.Result, error) { return nopResult{}, nil }
func (nopStmt) Query(args []driver.Value) (driver.Rows, error)  { return nopRows{}, nil }

type nopTx struct{}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

type nopResult struct{}

func (nopResult) LastInsertId() (int64, error) { return 0, nil }
func (nopResult) RowsAffected() (int64, error) { return 0, nil }

type nopRows struct{}

func (nopRows) Columns() []string              { return []string{} }
func (nopRows) Close() error                   { return nil }
func (nopRows) Next(dest []driver.Value) error { return driver.ErrBadConn }

var registerTestDriverOnce sync.Once

func ensureTestDriverRegistered() {
	registerTestDriverOnce.Do(func() {
		sql.Register("dbtest", nopDriver{})
	})
}

func withTestDriver(t *testing.T) func() {
	t.Helper()
	ensureTestDriverRegistered()
	prev := openDB
	openDB = func(name, dsn string) (*sql.DB, error) {
		return sql.Open("dbtest", dsn)
	}
	return func() {
		openDB = prev
	}
}

func TestOptionsFromEnvAppliesOverrides(t *testing.T) {
	restore := withTestDriver(t)
	defer restore()

	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_MAX_IDLE_CONNS", "3")
	t.Setenv("DB_CONN_MAX_LIFETIME", "20m")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "45s")
	t.Setenv("DB_PING_TIMEOUT", "1s")

	opts := OptionsFromEnv(DefaultServerOptions())
	db, err := Connect(context.Background(), DriverPostgres, "ignored", opts)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer db.Close()

	stats := db.Stats()
	if stats.MaxOpenConnections != 7 {
		t.Fatalf("expected MaxOpenConnections=7, got %d", stats.MaxOpenConnections)
	}
	if opts.MaxIdleConns != 3 {
		t.Fatalf("expected MaxIdleConns=3, got %d", opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime != 20*time.Minute {
		t.Fatalf("expected ConnMaxLifetime=20m, got %s", opts.ConnMaxLifetime)
	}
	if opts.ConnMaxIdleTime != 45*time.Second {
		t.Fatalf("expected ConnMaxIdleTime=45s, got %s", opts.ConnMaxIdleTime)
	}
	if opts.PingTimeout != time.Second {
		t.Fatalf("expected PingTimeout=1s, got %s", opts.PingTimeout)
	}
}

func TestOptionsFromEnvIgnoresInvalid(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("DB_PING_TIMEOUT", "soon")

	opts := OptionsFromEnv(DefaultMigrateOptions())
	if opts.MaxOpenConns != 1 || opts.PingTimeout != 5*time.Second {
		t.Fatalf("expected defaults to survive invalid env, got %+v", opts)
	}
}

func TestConnectRejectsBadInput(t *testing.T) {
	if _, err := Connect(context.Background(), DriverPostgres, "  ", DefaultServerOptions()); !errors.Is(err, ErrEmptyDSN) {
		t.Fatalf("expected ErrEmptyDSN, got %v", err)
	}
	if _, err := Connect(context.Background(), "mysql", "dsn", DefaultServerOptions()); !errors.Is(err, ErrUnsupportedDriver) {
		t.Fatalf("expected ErrUnsupportedDriver, got %v", err)
	}
}

func TestConnectSQLiteUsesSingleConnection(t *testing.T) {
	restore := withTestDriver(t)
	defer restore()

	db, err := Connect(context.Background(), DriverSQLite, "ignored", DefaultServerOptions())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer db.Close()
	if got := db.Stats().MaxOpenConnections; got != 1 {
		t.Fatalf("expected MaxOpenConnections=1, got %d", got)
	}
}

func TestConnectWithRetryRecovers(t *testing.T) {
	var calls int32
	prev := openDB
	openDB = func(name, dsn string) (*sql.DB, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, driver.ErrBadConn
		}
		ensureTestDriverRegistered()
		return sql.Open("dbtest", dsn)
	}
	defer func() {
		openDB = prev
	}()

	db, err := ConnectWithRetry(context.Background(), DriverPostgres, "ignored", DefaultServerOptions(), 5*time.Second)
	if err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	defer db.Close()
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected 2 open attempts, got %d", calls)
	}
}

func TestConnectWithRetryStopsOnPermanentError(t *testing.T) {
	start := time.Now()
	_, err := ConnectWithRetry(context.Background(), "mysql", "dsn", DefaultServerOptions(), time.Minute)
	if !errors.Is(err, ErrUnsupportedDriver) {
		t.Fatalf("expected ErrUnsupportedDriver, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatalf("permanent error should not be retried")
	}
}

func TestRebind(t *testing.T) {
	q := "SELECT id FROM documents WHERE user_id = $1 AND id = $12"
	if got := Rebind(DriverPostgres, q); got != q {
		t.Fatalf("postgres query changed: %s", got)
	}
	want := "SELECT id FROM documents WHERE user_id = ? AND id = ?"
	if got := Rebind(DriverSQLite, q); got != want {
		t.Fatalf("Rebind = %q, want %q", got, want)
	}
	if got := Rebind(DriverSQLite, "SELECT '$' || name"); got != "SELECT '$' || name" {
		t.Fatalf("bare dollar should be kept: %s", got)
	}
}

func TestRunMigrationsSQLite(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "ats.db")
	db, err := Connect(ctx, DriverSQLite, dsn, DefaultMigrateOptions())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := RunMigrations(ctx, db, DriverSQLite); err != nil {
			t.Fatalf("RunMigrations run %d: %v", i+1, err)
		}
	}

	version, err := MigrationVersion(ctx, db, DriverSQLite)
	if err != nil {
		t.Fatalf("MigrationVersion: %v", err)
	}
	if version != 1 {
		t.Fatalf("expected schema version 1, got %d", version)
	}

	if _, err := db.ExecContext(ctx, `INSERT INTO documents (id, user_id, file_name, mime_type, size_bytes, storage_key, extracted_key, extracted_chars, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, "d1", "u1", "cv.pdf", "application/pdf", 10, "k", "k.extracted.txt", 5, time.Now().UTC()); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO documents (id, user_id, file_name, mime_type, size_bytes, storage_key, extracted_key, extracted_chars, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, "d2", "u1", "cv.pdf", "application/pdf", 10, "k", "k.extracted.txt", 5, time.Now().UTC()); err == nil {
		t.Fatalf("expected unique user_id constraint to reject a second row")
	}
}

func TestRunMigrationsNilAndUnknownDriver(t *testing.T) {
	if err := RunMigrations(context.Background(), nil, DriverPostgres); err != nil {
		t.Fatalf("nil db should be a no-op: %v", err)
	}
	if _, err := Dialect("mysql"); !errors.Is(err, ErrUnsupportedDriver) {
		t.Fatalf("expected ErrUnsupportedDriver, got %v", err)
	}
}
