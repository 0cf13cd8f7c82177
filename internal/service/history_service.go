package service

import (
	"context"
	"fmt"

	"github.com/cwrk-planet/meeting-service/internal/domain"
	"github.com/cwrk-planet/meeting-service/internal/postgres"
)

// HistoryService — отчёты по прошедшим встречам. Репозиторий опционален:
// без DSN в конфиге сервис работает в режиме disabled.
type HistoryService struct {
	repo *postgres.HistoryRepository
}

func NewHistoryService(repo *postgres.HistoryRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

func (s *HistoryService) Enabled() bool {
	return s != nil && s.repo != nil
}

// Archive сохраняет итоговый снимок завершённой встречи.
func (s *HistoryService) Archive(ctx context.Context, m domain.HistoricalMeeting) error {
	if !s.Enabled() {
		return domain.ErrHistoryDisabled
	}
	if err := s.repo.Save(ctx, &m); err != nil {
		return fmt.Errorf("historyRepo.Save: %w", err)
	}
	return nil
}

// List возвращает прошедшие встречи с курсорной пагинацией.
func (s *HistoryService) List(ctx context.Context, limit int, cursor string) ([]domain.HistoricalMeeting, string, error) {
	if !s.Enabled() {
		return nil, "", domain.ErrHistoryDisabled
	}
	return s.repo.List(ctx, limit, cursor)
}
