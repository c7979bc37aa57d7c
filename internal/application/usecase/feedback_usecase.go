package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// FeedbackUseCase recepción y listado de mensajes de soporte.
type FeedbackUseCase struct {
	repo repository.FeedbackRepository
}

// NewFeedbackUseCase construye el caso de uso.
func NewFeedbackUseCase(repo repository.FeedbackRepository) *FeedbackUseCase {
	return &FeedbackUseCase{repo: repo}
}

// Create guarda un mensaje de feedback.
func (uc *FeedbackUseCase) Create(in dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	if in.Email == "" || in.Message == "" {
		return nil, domain.ErrInvalidInput
	}
	feedback := &entity.Feedback{
		ID:        uuid.New().String(),
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(feedback); err != nil {
		return nil, err
	}
	return toFeedbackResponse(feedback), nil
}

// List lista mensajes de feedback (solo admin).
func (uc *FeedbackUseCase) List(limit, offset int) ([]dto.FeedbackResponse, error) {
	feedbacks, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FeedbackResponse, 0, len(feedbacks))
	for _, f := range feedbacks {
		out = append(out, *toFeedbackResponse(f))
	}
	return out, nil
}

func toFeedbackResponse(f *entity.Feedback) *dto.FeedbackResponse {
	return &dto.FeedbackResponse{
		ID:        f.ID,
		Email:     f.Email,
		Message:   f.Message,
		CreatedAt: f.CreatedAt,
	}
}
