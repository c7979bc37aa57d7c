package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.FeedbackRepository = (*FeedbackRepository)(nil)

// FeedbackRepository adaptador en memoria para mensajes de feedback.
type FeedbackRepository struct {
	mu        sync.RWMutex
	feedbacks []*entity.Feedback
}

// NewFeedbackRepository construye el repositorio vacío.
func NewFeedbackRepository() *FeedbackRepository {
	return &FeedbackRepository{}
}

// Create guarda un mensaje.
func (r *FeedbackRepository) Create(feedback *entity.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *feedback
	r.feedbacks = append(r.feedbacks, &clone)
	return nil
}

// List lista mensajes, más reciente primero.
func (r *FeedbackRepository) List(limit, offset int) ([]*entity.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.Feedback, 0, len(r.feedbacks))
	for _, f := range r.feedbacks {
		clone := *f
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}
