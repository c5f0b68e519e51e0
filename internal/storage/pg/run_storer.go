package pg

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mzivkovic/ragrank/internal/domain"
	"github.com/mzivkovic/ragrank/internal/storage"
)

type RunStorer struct {
	db *pgxpool.Pool
}

func NewRunStorer(pool *ConnectionPool) *RunStorer {
	return &RunStorer{db: pool.conn}
}

// SaveRun inserts the run header and bulk-copies its results in one
// transaction so a partially written run never becomes visible.
func (s *RunStorer) SaveRun(ctx context.Context, run domain.EvaluationRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cmd := `
        INSERT INTO evaluation_runs (id, query, created_at)
        VALUES ($1, $2, $3);
    `
	if _, err := tx.Exec(ctx, cmd, run.ID, run.Query, run.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert evaluation run: %w", err)
	}

	rows := make([][]interface{}, len(run.Results))
	for i, r := range run.Results {
		passageJSON, err := json.Marshal(r.Passage)
		if err != nil {
			return fmt.Errorf("failed to marshal passage %s: %w", r.Passage.ID, err)
		}

		var entityScore, semanticScore *float64
		if r.Entity != nil {
			entityScore = &r.Entity.Value
		}
		if r.Semantic != nil {
			semanticScore = &r.Semantic.Value
		}

		rows[i] = []interface{}{
			run.ID,
			r.Passage.ID,
			r.Rank,
			r.FinalScore,
			entityScore,
			semanticScore,
			r.Relevant,
			string(r.Status),
			r.Failure,
			passageJSON,
		}
	}

	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"evaluation_results"},
		[]string{"run_id", "passage_id", "rank", "final_score", "entity_score", "semantic_score", "relevant", "status", "failure", "passage"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert evaluation results: %w", err)
	}

	return tx.Commit(ctx)
}

// GetRun loads a run header and its results ordered by rank.
func (s *RunStorer) GetRun(ctx context.Context, id uuid.UUID) (*domain.EvaluationRun, error) {
	run := domain.EvaluationRun{ID: id}

	err := s.db.QueryRow(
		ctx,
		`SELECT query, created_at FROM evaluation_runs WHERE id = $1;`,
		id,
	).Scan(&run.Query, &run.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load evaluation run %s: %w", id, err)
	}

	rows, err := s.db.Query(
		ctx,
		`SELECT rank, final_score, entity_score, semantic_score, relevant, status, failure, passage
         FROM evaluation_results
         WHERE run_id = $1
         ORDER BY rank;`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load evaluation results for run %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r             domain.Result
			entityScore   *float64
			semanticScore *float64
			failure       *string
			status        string
			passageJSON   []byte
		)
		if err := rows.Scan(&r.Rank, &r.FinalScore, &entityScore, &semanticScore, &r.Relevant, &status, &failure, &passageJSON); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation result: %w", err)
		}

		if err := json.Unmarshal(passageJSON, &r.Passage); err != nil {
			return nil, fmt.Errorf("failed to unmarshal passage: %w", err)
		}

		r.Status = domain.ResultStatus(status)
		if failure != nil {
			r.Failure = *failure
		}
		if entityScore != nil {
			r.Entity = &domain.EntityScore{Value: *entityScore}
		}
		if semanticScore != nil {
			r.Semantic = &domain.SemanticScore{Value: *semanticScore}
		}

		run.Results = append(run.Results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate evaluation results: %w", err)
	}

	return &run, nil
}

// Compile-time interface assertion
var _ storage.RunStorer = (*RunStorer)(nil)
