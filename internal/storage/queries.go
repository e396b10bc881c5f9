package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pable/go-cs-coach/internal/model"
)

// MatchRecord is one stored match with its decoded analysis.
type MatchRecord struct {
	Name       string
	MapName    string
	AnalyzedAt string
	Analysis   *model.MatchAnalysis
}

// MatchMeta is the cheap listing view, without the analysis blob.
type MatchMeta struct {
	Name       string
	MapName    string
	AnalyzedAt string
	Kills      int
	Deaths     int
	KD         float64
}

// MatchExists reports whether a match with the given name is stored.
func (db *DB) MatchExists(name string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE name = ?", name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertMatch stores an analysis under the given name. Uses INSERT OR
// REPLACE so re-analyzing the same demo is idempotent.
func (db *DB) InsertMatch(name string, a *model.MatchAnalysis) error {
	blob, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	_, err = db.conn.Exec(`
		INSERT OR REPLACE INTO matches(name, map_name, analyzed_at, kills, deaths, kd, analysis)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		name, a.Positioning.MapName, time.Now().UTC().Format(time.RFC3339),
		a.Summary.TotalKills, a.Summary.TotalDeaths, a.Summary.KDRatio,
		string(blob),
	)
	return err
}

// ListMatches returns the stored matches in insertion order.
func (db *DB) ListMatches() ([]MatchMeta, error) {
	rows, err := db.conn.Query(`
		SELECT name, map_name, analyzed_at, kills, deaths, kd
		FROM matches ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MatchMeta
	for rows.Next() {
		var m MatchMeta
		if err := rows.Scan(&m.Name, &m.MapName, &m.AnalyzedAt, &m.Kills, &m.Deaths, &m.KD); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetMatch loads one stored match by name, nil when absent.
func (db *DB) GetMatch(name string) (*MatchRecord, error) {
	var rec MatchRecord
	var blob string
	err := db.conn.QueryRow(`
		SELECT name, map_name, analyzed_at, analysis
		FROM matches WHERE name = ?`, name).
		Scan(&rec.Name, &rec.MapName, &rec.AnalyzedAt, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.Analysis = &model.MatchAnalysis{}
	if err := json.Unmarshal([]byte(blob), rec.Analysis); err != nil {
		return nil, fmt.Errorf("decode analysis for %s: %w", name, err)
	}
	return &rec, nil
}

// GetAllAnalyses loads every stored match in insertion order, which
// callers treat as chronological for trend computation. A negative or
// zero limit loads everything; a positive limit keeps only the most
// recent matches.
func (db *DB) GetAllAnalyses(limit int) ([]MatchRecord, error) {
	rows, err := db.conn.Query("SELECT name, map_name, analyzed_at, analysis FROM matches ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		var rec MatchRecord
		var blob string
		if err := rows.Scan(&rec.Name, &rec.MapName, &rec.AnalyzedAt, &blob); err != nil {
			return nil, err
		}
		rec.Analysis = &model.MatchAnalysis{}
		if err := json.Unmarshal([]byte(blob), rec.Analysis); err != nil {
			return nil, fmt.Errorf("decode analysis for %s: %w", rec.Name, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// DeleteMatch removes a stored match, reporting whether it existed.
func (db *DB) DeleteMatch(name string) (bool, error) {
	res, err := db.conn.Exec("DELETE FROM matches WHERE name = ?", name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
