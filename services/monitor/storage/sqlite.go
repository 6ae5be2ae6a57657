package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/andipradana/domain-monitor/services/monitor/common"
	_ "github.com/mattn/go-sqlite3"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("storage")

const activeStatus = "aktif"

// ErrDomainNotFound signals that the requested domain row does not exist
var ErrDomainNotFound = errors.New("domain not found")

// sqliteStorage is the sqlite implementation for domains and reports storage
type sqliteStorage struct {
	db               *sql.DB
	retentionSeconds int
	cancelFunc       context.CancelFunc
	wg               sync.WaitGroup
}

// NewSQLiteStorage creates the database, schema, and starts the retention cleaner
func NewSQLiteStorage(dbPath string, retentionSeconds int) (*sqliteStorage, error) {
	err := prepareDirectories(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial empty DB file: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = createSchema(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &sqliteStorage{
		db:               db,
		retentionSeconds: retentionSeconds,
		cancelFunc:       cancel,
	}

	s.startRetentionCleaner(ctx)

	return s, nil
}

func prepareDirectories(dbPath string) error {
	return os.MkdirAll(filepath.Dir(dbPath), os.ModePerm)
}

func createSchema(db *sql.DB) error {

	schema := `
	CREATE TABLE IF NOT EXISTS domains (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		domain       TEXT NOT NULL,
		brand        TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'aktif',
		kategori     TEXT NOT NULL DEFAULT 'normal',
		expired_date TEXT,
		catatan      TEXT,
		created_at   INTEGER NOT NULL,
		updated_at   INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS reports (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		receipt      TEXT NOT NULL,
		domain       TEXT NOT NULL,
		brand        TEXT NOT NULL,
		status       TEXT,
		kategori     TEXT,
		expired_date TEXT,
		catatan      TEXT,
		api_key      TEXT,
		reported_at  INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_brand ON reports(brand);
	CREATE INDEX IF NOT EXISTS idx_reports_reported_at ON reports(reported_at);
	CREATE INDEX IF NOT EXISTS idx_domains_brand ON domains(brand);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SaveReport inserts one report row received from an agent
func (s *sqliteStorage) SaveReport(ctx context.Context, report common.Report) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (receipt, domain, brand, status, kategori, expired_date, catatan, api_key, reported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, report.Receipt, report.Domain, report.Brand, report.Status, report.Kategori,
		report.ExpiredDate, report.Catatan, report.ApiKey, report.ReportedAt)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}

	return nil
}

// GetReports returns all retained reports, newest first
func (s *sqliteStorage) GetReports(ctx context.Context) ([]common.Report, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, receipt, domain, brand, status, kategori, expired_date, catatan, reported_at
		FROM reports
		ORDER BY reported_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var results []common.Report
	for rows.Next() {
		var r common.Report
		err = rows.Scan(&r.ID, &r.Receipt, &r.Domain, &r.Brand, &r.Status, &r.Kategori,
			&r.ExpiredDate, &r.Catatan, &r.ReportedAt)
		if err != nil {
			return nil, err
		}

		results = append(results, r)
	}

	return results, rows.Err()
}

// AddDomain inserts one domain row. The created/updated timestamps are set here.
func (s *sqliteStorage) AddDomain(ctx context.Context, domain common.Domain) error {
	now := time.Now().Unix()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO domains (domain, brand, status, kategori, expired_date, catatan, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, domain.Domain, domain.Brand, domain.Status, domain.Kategori,
		domain.ExpiredDate, domain.Catatan, now, now)
	if err != nil {
		return fmt.Errorf("failed to insert domain: %w", err)
	}

	return nil
}

// GetDomains returns all tracked domains, most recently added first
func (s *sqliteStorage) GetDomains(ctx context.Context) ([]common.Domain, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, domain, brand, status, kategori, expired_date, catatan, created_at, updated_at
		FROM domains
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var results []common.Domain
	for rows.Next() {
		var d common.Domain
		err = rows.Scan(&d.ID, &d.Domain, &d.Brand, &d.Status, &d.Kategori,
			&d.ExpiredDate, &d.Catatan, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return nil, err
		}

		results = append(results, d)
	}

	return results, rows.Err()
}

// UpdateDomain patches the provided fields of a domain row. Nil fields are left untouched.
func (s *sqliteStorage) UpdateDomain(ctx context.Context, id int64, update common.DomainUpdate) error {
	setClause := ""
	values := make([]interface{}, 0)

	appendField := func(column string, value *string) {
		if value == nil {
			return
		}
		if len(setClause) > 0 {
			setClause += ", "
		}
		setClause += column + " = ?"
		values = append(values, *value)
	}

	appendField("domain", update.Domain)
	appendField("brand", update.Brand)
	appendField("status", update.Status)
	appendField("kategori", update.Kategori)
	appendField("expired_date", update.ExpiredDate)
	appendField("catatan", update.Catatan)

	if len(values) == 0 {
		return errors.New("no data to update")
	}

	setClause += ", updated_at = ?"
	values = append(values, time.Now().Unix(), id)

	res, err := s.db.ExecContext(ctx, "UPDATE domains SET "+setClause+" WHERE id = ?", values...)
	if err != nil {
		return fmt.Errorf("failed to update domain: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDomainNotFound
	}

	return nil
}

// DeleteDomain removes a domain row by ID
func (s *sqliteStorage) DeleteDomain(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM domains WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete domain: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDomainNotFound
	}

	return nil
}

// GetDashboardStats computes the landing page counters
func (s *sqliteStorage) GetDashboardStats(ctx context.Context) (common.DashboardStats, error) {
	stats := common.DashboardStats{
		BrandStats: make(map[string]int),
	}

	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM domains").Scan(&stats.TotalDomains)
	if err != nil {
		return common.DashboardStats{}, err
	}

	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM domains WHERE status = ?", activeStatus).Scan(&stats.ActiveDomains)
	if err != nil {
		return common.DashboardStats{}, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT brand, COUNT(*) FROM domains GROUP BY brand")
	if err != nil {
		return common.DashboardStats{}, err
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var brand string
		var count int
		if err := rows.Scan(&brand, &count); err != nil {
			return common.DashboardStats{}, err
		}
		stats.BrandStats[brand] = count
	}
	if err := rows.Err(); err != nil {
		return common.DashboardStats{}, err
	}

	startOfDay := time.Now().Truncate(24 * time.Hour).Unix()
	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reports WHERE reported_at >= ?", startOfDay).Scan(&stats.TodayReports)
	if err != nil {
		return common.DashboardStats{}, err
	}

	return stats, nil
}

func (s *sqliteStorage) cleanRetainedReports(ctx context.Context) error {
	nowSec := time.Now().Unix()
	cutoff := nowSec - int64(s.retentionSeconds)
	_, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE reported_at < ?", cutoff)
	return err
}

func (s *sqliteStorage) startRetentionCleaner(ctx context.Context) {
	s.wg.Add(1)

	// max(RetentionSeconds/10, 60)
	intervalSec := s.retentionSeconds / 10
	if intervalSec < 60 {
		intervalSec = 60
	}

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)

	go func() {
		defer s.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Debug("running retention cleanup")

				err := s.cleanRetainedReports(ctx)
				if err != nil {
					log.Warn("failed to cleanup retained reports", "error", err)
				}
			}
		}
	}()
}

// Close closes the database and stops background routines
func (s *sqliteStorage) Close() error {
	s.cancelFunc()
	s.wg.Wait()
	return s.db.Close()
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *sqliteStorage) IsInterfaceNil() bool {
	return s == nil
}
