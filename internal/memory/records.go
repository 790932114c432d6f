package memory

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lazypower/hivemind/internal/swarm"
)

// Store persists one record. A zero ID is assigned a fresh UUID; record
// IDs live outside the seeded in-memory core, so they do not affect run
// determinism. Implements swarm.CollectiveMemory.
func (db *DB) Store(rec swarm.MemoryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	success := 0
	if rec.Success {
		success = 1
	}

	_, err := db.Exec(`
		INSERT INTO swarm_records (id, kind, topic, agent_id, value, success, generation, context, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Kind, rec.Topic, rec.AgentID, rec.Value, success,
		rec.Generation, rec.Context, rec.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("store record: %w", err)
	}
	return nil
}

// Recall returns the most recent records whose topic, kind, or context
// contains the query text (case-insensitive). An empty query returns the
// most recent records of any topic. Implements swarm.CollectiveMemory.
func (db *DB) Recall(query string, limit int) ([]swarm.MemoryRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	pattern := "%" + query + "%"
	rows, err := db.Query(`
		SELECT id, kind, topic, agent_id, value, success, generation, context, created_at
		FROM swarm_records
		WHERE topic LIKE ? OR kind LIKE ? OR context LIKE ?
		ORDER BY created_at DESC
		LIMIT ?
	`, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("recall: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ByAgent returns the most recent records attributed to one agent.
func (db *DB) ByAgent(agentID string, limit int) ([]swarm.MemoryRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT id, kind, topic, agent_id, value, success, generation, context, created_at
		FROM swarm_records
		WHERE agent_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, agentID, limit)
	if err != nil {
		return nil, fmt.Errorf("recall by agent: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Count returns the total number of stored records.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM swarm_records").Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func scanRecords(rows *sql.Rows) ([]swarm.MemoryRecord, error) {
	var recs []swarm.MemoryRecord
	for rows.Next() {
		var rec swarm.MemoryRecord
		var agentID, context sql.NullString
		var success int
		var createdAt int64
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Topic, &agentID,
			&rec.Value, &success, &rec.Generation, &context, &createdAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.AgentID = agentID.String
		rec.Context = context.String
		rec.Success = success != 0
		rec.CreatedAt = time.UnixMilli(createdAt)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
