package flights

import (
	"context"

	"github.com/avolkov/skyfare/internal/domain"
	"github.com/avolkov/skyfare/internal/storage"
)

type UseCase interface {
	Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
}

// Cache holds the unfiltered flight list. Nil disables caching.
type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
}

type Service struct {
	repo  storage.FlightStore
	cache Cache
}

func NewService(repo storage.FlightStore, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Search lists flights matching the filter. Only the unfiltered listing is
// served from cache; filtered searches always read the store so results
// reflect current inventory.
func (s *Service) Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	if filter.Empty() && s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if filter.Empty() && s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

var _ UseCase = (*Service)(nil)
