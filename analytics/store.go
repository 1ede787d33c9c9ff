package analytics

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps the analytics SQLite database, kept separate from the post
// index so heavy write traffic never contends with content reads.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the analytics database at path.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS visits (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    visitor_id TEXT NOT NULL,
    ip_hash TEXT NOT NULL,
    device TEXT NOT NULL DEFAULT '',
    path TEXT NOT NULL,
    referrer TEXT NOT NULL DEFAULT '',
    timestamp TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
CREATE INDEX IF NOT EXISTS idx_visits_path ON visits(path);
`)
	return err
}

// GetSetting retrieves a setting value by key. Returns empty string if not found.
func (s *Store) GetSetting(key string) (string, error) {
	var val string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&val)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return val, err
}

// SetSetting stores a setting value by key (upsert).
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// SaveVisit stores a new visit.
func (s *Store) SaveVisit(v *Visit) error {
	_, err := s.db.Exec(`INSERT INTO visits (visitor_id, ip_hash, device, path, referrer, timestamp) VALUES (?, ?, ?, ?, ?, ?)`,
		v.VisitorID, v.IPHash, v.Device, v.Path, v.Referrer, v.Timestamp.UTC().Format(time.RFC3339))
	return err
}

// GetStats returns aggregated statistics for the given time range.
func (s *Store) GetStats(from, to time.Time) (*Stats, error) {
	stats := &Stats{
		Period:        from.Format("2006-01-02") + " to " + to.Format("2006-01-02"),
		TopPages:      []PageStat{},
		ReferrerStats: []DimensionStat{},
		DeviceStats:   []DimensionStat{},
		DailyViews:    []DailyView{},
	}
	fromStr := from.UTC().Format(time.RFC3339)
	toStr := to.UTC().Format(time.RFC3339)

	row := s.db.QueryRow(`SELECT COUNT(*), COUNT(DISTINCT visitor_id) FROM visits WHERE timestamp BETWEEN ? AND ?`, fromStr, toStr)
	if err := row.Scan(&stats.TotalViews, &stats.UniqueVisitors); err != nil {
		return nil, err
	}

	if err := s.queryDimension(`SELECT path, COUNT(*) AS c FROM visits WHERE timestamp BETWEEN ? AND ? GROUP BY path ORDER BY c DESC LIMIT 10`,
		fromStr, toStr, func(name string, count int) {
			stats.TopPages = append(stats.TopPages, PageStat{Path: name, Views: count})
		}); err != nil {
		return nil, err
	}

	if err := s.queryDimension(`SELECT referrer, COUNT(*) AS c FROM visits WHERE timestamp BETWEEN ? AND ? AND referrer != '' GROUP BY referrer ORDER BY c DESC LIMIT 10`,
		fromStr, toStr, func(name string, count int) {
			stats.ReferrerStats = append(stats.ReferrerStats, DimensionStat{Name: name, Count: count})
		}); err != nil {
		return nil, err
	}

	if err := s.queryDimension(`SELECT device, COUNT(*) AS c FROM visits WHERE timestamp BETWEEN ? AND ? GROUP BY device ORDER BY c DESC`,
		fromStr, toStr, func(name string, count int) {
			stats.DeviceStats = append(stats.DeviceStats, DimensionStat{Name: name, Count: count})
		}); err != nil {
		return nil, err
	}

	if err := s.queryDimension(`SELECT substr(timestamp, 1, 10) AS day, COUNT(*) FROM visits WHERE timestamp BETWEEN ? AND ? GROUP BY day ORDER BY day`,
		fromStr, toStr, func(name string, count int) {
			stats.DailyViews = append(stats.DailyViews, DailyView{Date: name, Views: count})
		}); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *Store) queryDimension(query, from, to string, add func(name string, count int)) error {
	rows, err := s.db.Query(query, from, to)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return err
		}
		add(name, count)
	}
	return rows.Err()
}

// CleanupBefore deletes visits older than cutoff. Returns rows removed.
func (s *Store) CleanupBefore(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM visits WHERE timestamp < ?`, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StartCleanupScheduler deletes visits older than retentionDays on a fixed
// interval. Returns a stop function.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().AddDate(0, 0, -retentionDays)
				_, _ = s.CleanupBefore(cutoff)
			case <-done:
				return
			}
		}
	}()
	return func() {
		ticker.Stop()
		close(done)
	}
}
