// Package storage provides SQLite-based persistence for match history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/kobra/internal/core"
)

// LocalPlayer is the player name recorded for matches played outside SSH.
const LocalPlayer = "local"

// Store manages the SQLite database connection for match persistence.
type Store struct {
	db *sql.DB
}

// MatchRecord is one finished duel.
type MatchRecord struct {
	ID        int64
	MatchID   string // UUID, assigned on save when empty
	GameID    string
	Player    string // SSH user or LocalPlayer
	Result    string // core.ResultPlayer, core.ResultCPU or core.ResultDraw
	Cause     string
	Reason    string
	PlayerLen int
	CPULen    int
	Ticks     int64
	CreatedAt time.Time
}

// NewMatchRecord builds a record from a game's match report.
func NewMatchRecord(gameID, player string, rep core.MatchReport) MatchRecord {
	if player == "" {
		player = LocalPlayer
	}
	return MatchRecord{
		GameID:    gameID,
		Player:    player,
		Result:    rep.Result,
		Cause:     rep.Cause,
		Reason:    rep.Reason,
		PlayerLen: rep.PlayerLength,
		CPULen:    rep.CPULength,
		Ticks:     int64(rep.Ticks),
	}
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
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL,
			result TEXT NOT NULL,
			cause TEXT NOT NULL DEFAULT '',
			reason TEXT NOT NULL DEFAULT '',
			player_len INTEGER NOT NULL DEFAULT 0,
			cpu_len INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_game_id ON matches(game_id);
		CREATE INDEX IF NOT EXISTS idx_matches_player ON matches(player);
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

// SaveMatch records a finished match and returns it with ID and MatchID set.
func (s *Store) SaveMatch(rec MatchRecord) (MatchRecord, error) {
	if rec.MatchID == "" {
		rec.MatchID = uuid.NewString()
	}
	if rec.Player == "" {
		rec.Player = LocalPlayer
	}

	res, err := s.db.Exec(
		`INSERT INTO matches
		 (match_id, game_id, player, result, cause, reason, player_len, cpu_len, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.MatchID, rec.GameID, rec.Player, rec.Result, rec.Cause, rec.Reason,
		rec.PlayerLen, rec.CPULen, rec.Ticks,
	)
	if err != nil {
		return MatchRecord{}, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return MatchRecord{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	rec.ID = id
	return rec, nil
}

const matchColumns = `id, match_id, game_id, player, result, cause, reason,
		        player_len, cpu_len, ticks, created_at`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (MatchRecord, error) {
	var rec MatchRecord
	var createdAt any
	err := row.Scan(
		&rec.ID,
		&rec.MatchID,
		&rec.GameID,
		&rec.Player,
		&rec.Result,
		&rec.Cause,
		&rec.Reason,
		&rec.PlayerLen,
		&rec.CPULen,
		&rec.Ticks,
		&createdAt,
	)
	if err != nil {
		return MatchRecord{}, err
	}
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
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

func (s *Store) queryMatches(query string, args ...any) ([]MatchRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// RecentMatches returns the newest matches for gameID, or for every game
// when gameID is empty.
func (s *Store) RecentMatches(gameID string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	if gameID == "" {
		return s.queryMatches(
			`SELECT `+matchColumns+`
			 FROM matches
			 ORDER BY created_at DESC, id DESC
			 LIMIT ?`,
			limit,
		)
	}
	return s.queryMatches(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

// MatchesByPlayer returns the newest matches played by player.
func (s *Store) MatchesByPlayer(player string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryMatches(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE player = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		player, limit,
	)
}

// PlayerMatches returns the newest matches player recorded on gameID.
func (s *Store) PlayerMatches(gameID, player string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryMatches(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE game_id = ? AND player = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, player, limit,
	)
}

// MatchByID retrieves a match by its UUID. Returns nil when not found.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	rec, err := scanMatch(s.db.QueryRow(
		`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`,
		matchID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &rec, nil
}

// ClearMatches deletes all matches for the given game.
func (s *Store) ClearMatches(gameID string) error {
	_, err := s.db.Exec("DELETE FROM matches WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

// MatchStats contains aggregated results for a game.
type MatchStats struct {
	GameID     string
	Games      int
	Wins       int // Player wins
	Losses     int // CPU wins
	Draws      int
	BestLength int // Longest player snake at the end of a match
	AvgTicks   float64
	LastPlayed time.Time
}

// WinRate returns wins over games played, 0 when nothing was played.
func (m MatchStats) WinRate() float64 {
	if m.Games == 0 {
		return 0
	}
	return float64(m.Wins) / float64(m.Games)
}

const statsColumns = `COUNT(*),
		        COALESCE(SUM(CASE WHEN result = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN result = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN result = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(player_len), 0),
		        COALESCE(AVG(ticks), 0),
		        MAX(created_at)`

// Stats retrieves aggregated results for a specific game.
func (s *Store) Stats(gameID string) (*MatchStats, error) {
	return s.queryStats(gameID, `WHERE game_id = ?`, gameID)
}

// StatsByPlayer retrieves aggregated results of one player on a game.
func (s *Store) StatsByPlayer(gameID, player string) (*MatchStats, error) {
	return s.queryStats(gameID, `WHERE game_id = ? AND player = ?`, gameID, player)
}

func (s *Store) queryStats(gameID, where string, args ...any) (*MatchStats, error) {
	stats := &MatchStats{GameID: gameID}
	var lastPlayed any

	params := append([]any{core.ResultPlayer, core.ResultCPU, core.ResultDraw}, args...)
	err := s.db.QueryRow(
		`SELECT `+statsColumns+` FROM matches `+where,
		params...,
	).Scan(&stats.Games, &stats.Wins, &stats.Losses, &stats.Draws,
		&stats.BestLength, &stats.AvgTicks, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get match stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// AllStats retrieves statistics for every game that has been played.
func (s *Store) AllStats() (map[string]*MatchStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, `+statsColumns+`
		 FROM matches
		 GROUP BY game_id`,
		core.ResultPlayer, core.ResultCPU, core.ResultDraw,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*MatchStats)
	for rows.Next() {
		var m MatchStats
		var lastPlayed any
		if err := rows.Scan(&m.GameID, &m.Games, &m.Wins, &m.Losses, &m.Draws,
			&m.BestLength, &m.AvgTicks, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		m.LastPlayed = parseTime(lastPlayed)
		stats[m.GameID] = &m
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
