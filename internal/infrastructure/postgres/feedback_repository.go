package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.FeedbackRepository = (*FeedbackRepo)(nil)

// FeedbackRepo implementación de FeedbackRepository sobre PostgreSQL.
type FeedbackRepo struct {
	q Querier
}

// NewFeedbackRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFeedbackRepository(q Querier) *FeedbackRepo {
	return &FeedbackRepo{q: q}
}

// Create persiste un mensaje de feedback.
func (r *FeedbackRepo) Create(feedback *entity.Feedback) error {
	query := `
		INSERT INTO feedback (id, email, message, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		feedback.ID, feedback.Email, feedback.Message, feedback.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// List lista mensajes de feedback, más reciente primero.
func (r *FeedbackRepo) List(limit, offset int) ([]*entity.Feedback, error) {
	query := `
		SELECT id, email, message, created_at
		FROM feedback ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var list []*entity.Feedback
	for rows.Next() {
		var f entity.Feedback
		if err := rows.Scan(&f.ID, &f.Email, &f.Message, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}
