package timing

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Row is one recorded timing aggregate from the history table
type Row struct {
	TestID     string
	Suite      string
	AvgSeconds float64
	Samples    int
	UpdatedAt  string
}

// Store reads historical test durations that the CI harness records
// into the test_timings table after each run.
type Store struct {
	dsn string
}

// NewStore resolves the connection string and creates a Store. The
// TIMINGS_DSN variable wins; otherwise the DSN is assembled from the
// DB_* variables, optionally loaded from the project's .env file.
func NewStore(projectPath string) *Store {
	// .env file might not exist, that's okay - use environment variables
	envPath := filepath.Join(projectPath, ".env")
	if err := godotenv.Load(envPath); err != nil {
		_ = err
	}

	if dsn := os.Getenv("TIMINGS_DSN"); dsn != "" {
		return &Store{dsn: dsn}
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "127.0.0.1"
	}
	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "3306"
	}
	dbUser := os.Getenv("DB_USERNAME")
	if dbUser == "" {
		dbUser = "root"
	}
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_DATABASE")
	if dbName == "" {
		dbName = "opencart"
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", dbUser, dbPassword, dbHost, dbPort, dbName)
	return &Store{dsn: dsn}
}

// AverageMinutes loads the rolling average duration per test unit
func (s *Store) AverageMinutes(ctx context.Context) (map[string]float64, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT test_id, avg_seconds FROM test_timings")
	if err != nil {
		return nil, fmt.Errorf("failed to query timing history: %w", err)
	}
	defer rows.Close()

	averages := make(map[string]float64)
	for rows.Next() {
		var testID string
		var avgSeconds float64
		if err := rows.Scan(&testID, &avgSeconds); err != nil {
			return nil, fmt.Errorf("failed to scan timing row: %w", err)
		}
		averages[testID] = avgSeconds / 60
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read timing history: %w", err)
	}
	return averages, nil
}

// Rows loads the full history table for display, ordered by suite
// then test ID.
func (s *Store) Rows(ctx context.Context) ([]Row, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		"SELECT test_id, suite, avg_seconds, samples, updated_at FROM test_timings ORDER BY suite, test_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query timing history: %w", err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.TestID, &r.Suite, &r.AvgSeconds, &r.Samples, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan timing row: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read timing history: %w", err)
	}
	return result, nil
}

func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("mysql", s.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to timing database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping timing database: %w", err)
	}
	return db, nil
}
