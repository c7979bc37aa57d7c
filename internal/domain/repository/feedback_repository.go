package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// FeedbackRepository define el puerto de persistencia para mensajes de feedback.
type FeedbackRepository interface {
	Create(feedback *entity.Feedback) error
	List(limit, offset int) ([]*entity.Feedback, error)
}
