// Package storage keeps finished games in SQLite through the pure-Go
// modernc.org/sqlite driver. Every score carries the seed of its board so a
// good game can be dealt again.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Several SSH sessions may finish games at once.
const dsnParams = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

const scoreColumns = "id, game_id, score, seed, created_at"

// Best first; the earlier game wins a tie.
const scoreOrder = "ORDER BY score DESC, id ASC"

// Store is the score database.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one finished game.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	Seed      int64
	CreatedAt time.Time
}

// GameStats aggregates the finished games of one mode.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	BestSeed   int64 // Seed of the highest scoring game
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Open opens the database at dbPath, creating it and its directory when
// missing. A leading ~ is the home directory.
func Open(dbPath string) (*Store, error) {
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveScore records a finished game and returns its id.
func (s *Store) SaveScore(gameID string, score int, seed int64) (int64, error) {
	res, err := s.db.Exec("INSERT INTO scores (game_id, score, seed) VALUES (?, ?, ?)", gameID, score, seed)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores returns up to limit best games of a mode. A limit of zero or
// less means 10.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores("SELECT "+scoreColumns+" FROM scores WHERE game_id = ? "+scoreOrder+" LIMIT ?", gameID, limit)
}

// AllScores returns every game of a mode, best first.
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	return s.queryScores("SELECT "+scoreColumns+" FROM scores WHERE game_id = ? "+scoreOrder, gameID)
}

func (s *Store) queryScores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &e.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// parseTimestamp handles both driver-decoded times and SQLite text dates.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.DateTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the best score of a mode, 0 when none is recorded.
func (s *Store) HighScore(gameID string) (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM scores WHERE game_id = ?", gameID).Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(best.Int64), nil
}

// ClearScores deletes every game of a mode and reports how many went.
func (s *Store) ClearScores(gameID string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared scores: %w", err)
	}
	return n, nil
}

// statsQuery aggregates one mode; the best game's seed comes from the
// first row in score order.
const statsQuery = `
	SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at),
	       (SELECT seed FROM scores WHERE game_id = ? ` + scoreOrder + ` LIMIT 1)
	FROM scores WHERE game_id = ?`

// GetGameStats aggregates the games of one mode. A mode never played gives
// zero stats, not an error.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}
	var lastPlayed any
	var bestSeed sql.NullInt64

	err := s.db.QueryRow(statsQuery, gameID, gameID).Scan(
		&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &lastPlayed, &bestSeed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.BestSeed = bestSeed.Int64
	stats.LastPlayed = parseTimestamp(lastPlayed)
	return stats, nil
}

// GetAllGamesStats aggregates every mode that has been played, keyed by id.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query("SELECT DISTINCT game_id FROM scores")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list games: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan game id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	all := make(map[string]*GameStats, len(ids))
	for _, id := range ids {
		st, err := s.GetGameStats(id)
		if err != nil {
			return nil, err
		}
		all[id] = st
	}
	return all, nil
}
