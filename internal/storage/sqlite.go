// Package storage provides SQLite-based persistence for finished games
// and suspended sessions. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// GameRecord represents one finished game.
type GameRecord struct {
	ID           int64
	Mode         string
	Difficulty   string
	Score        uint64
	Won          bool
	HighestTile  int
	Moves        uint32
	DurationSecs int
	PowerupsUsed string // comma-separated powerup names
	CreatedAt    time.Time
}

// SessionRecord represents a suspended session snapshot that can be
// resumed later.
type SessionRecord struct {
	Name      string
	Mode      string
	Score     uint64
	Snapshot  []byte // engine state JSON
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT 'normal',
			score INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			highest_tile INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			powerups_used TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_mode ON games(mode);
		CREATE INDEX IF NOT EXISTS idx_games_top ON games(mode, score DESC);

		CREATE TABLE IF NOT EXISTS sessions (
			name TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			snapshot BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame records a finished game. Returns the ID of the inserted
// record.
func (s *Store) SaveGame(rec GameRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO games
		 (mode, difficulty, score, won, highest_tile, moves, duration_secs, powerups_used)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Mode,
		rec.Difficulty,
		rec.Score,
		rec.Won,
		rec.HighestTile,
		rec.Moves,
		rec.DurationSecs,
		rec.PowerupsUsed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save game: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopGames retrieves the top N games for the given mode, ordered by
// score descending. An empty mode returns games across all modes.
func (s *Store) TopGames(mode string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT id, mode, difficulty, score, won, highest_tile, moves, duration_secs, powerups_used, created_at
		 FROM games`
	args := []any{}
	if mode != "" {
		query += " WHERE mode = ?"
		args = append(args, mode)
	}
	query += " ORDER BY score DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var entries []GameRecord
	for rows.Next() {
		rec, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

func scanGame(rows *sql.Rows) (GameRecord, error) {
	var rec GameRecord
	var createdAt any
	if err := rows.Scan(
		&rec.ID,
		&rec.Mode,
		&rec.Difficulty,
		&rec.Score,
		&rec.Won,
		&rec.HighestTile,
		&rec.Moves,
		&rec.DurationSecs,
		&rec.PowerupsUsed,
		&createdAt,
	); err != nil {
		return rec, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	rec.CreatedAt = parseTimestamp(createdAt)
	return rec, nil
}

// parseTimestamp handles both time.Time and string values coming back
// from the driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// BestScore returns the highest score recorded for the given mode.
// Returns 0 if no games exist.
func (s *Store) BestScore(mode string) (uint64, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM games WHERE mode = ?",
		mode,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return uint64(score.Int64), nil
}

// ClearGames deletes all recorded games for the given mode. An empty
// mode clears everything.
func (s *Store) ClearGames(mode string) error {
	var err error
	if mode == "" {
		_, err = s.db.Exec("DELETE FROM games")
	} else {
		_, err = s.db.Exec("DELETE FROM games WHERE mode = ?", mode)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	return nil
}

// SaveSession stores a suspended session snapshot under the given name,
// replacing any previous snapshot with that name.
func (s *Store) SaveSession(rec SessionRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (name, mode, score, snapshot, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET
		   mode = excluded.mode,
		   score = excluded.score,
		   snapshot = excluded.snapshot,
		   updated_at = CURRENT_TIMESTAMP`,
		rec.Name, rec.Mode, rec.Score, rec.Snapshot,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}
	return nil
}

// LoadSession retrieves a suspended session by name. Returns nil if no
// session with that name exists.
func (s *Store) LoadSession(name string) (*SessionRecord, error) {
	var rec SessionRecord
	var updatedAt any

	err := s.db.QueryRow(
		`SELECT name, mode, score, snapshot, updated_at
		 FROM sessions
		 WHERE name = ?`,
		name,
	).Scan(&rec.Name, &rec.Mode, &rec.Score, &rec.Snapshot, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}

	rec.UpdatedAt = parseTimestamp(updatedAt)
	return &rec, nil
}

// ListSessions retrieves all suspended sessions, most recent first.
func (s *Store) ListSessions() ([]SessionRecord, error) {
	rows, err := s.db.Query(
		`SELECT name, mode, score, snapshot, updated_at
		 FROM sessions
		 ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var updatedAt any
		if err := rows.Scan(&rec.Name, &rec.Mode, &rec.Score, &rec.Snapshot, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.UpdatedAt = parseTimestamp(updatedAt)
		entries = append(entries, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteSession removes a suspended session, typically after it has
// been resumed or finished.
func (s *Store) DeleteSession(name string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete session: %w", err)
	}
	return nil
}

// ModeStats contains aggregated statistics for one mode.
type ModeStats struct {
	Mode       string
	GamesCount int
	Wins       int
	BestScore  uint64
	AvgScore   float64
	LastPlayed time.Time
}

// GetModeStats retrieves aggregated statistics for a specific mode.
func (s *Store) GetModeStats(mode string) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)
		 FROM games WHERE mode = ?`,
		mode,
	).Scan(&stats.GamesCount, &stats.Wins, &stats.BestScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM games WHERE mode = ? ORDER BY created_at DESC LIMIT 1`,
		mode,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// GetAllModeStats retrieves statistics for every mode that has been
// played.
func (s *Store) GetAllModeStats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), SUM(won), MAX(score), AVG(score), MAX(created_at)
		 FROM games
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all mode stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var m ModeStats
		var lastPlayed any
		if err := rows.Scan(&m.Mode, &m.GamesCount, &m.Wins, &m.BestScore, &m.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		m.LastPlayed = parseTimestamp(lastPlayed)
		stats[m.Mode] = &m
	}

	return stats, nil
}

// JoinPowerups renders a powerup name list for the powerups_used
// column.
func JoinPowerups(names []string) string {
	return strings.Join(names, ",")
}
