package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/br-standings/models"
	"github.com/Dosada05/br-standings/repositories"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type ListTournamentsInput struct {
	Type   string
	Limit  int
	Offset int
}

type TournamentService interface {
	GetTournament(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context, input ListTournamentsInput) ([]models.Tournament, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
}

func NewTournamentService(tournamentRepo repositories.TournamentRepository) TournamentService {
	return &tournamentService{tournamentRepo: tournamentRepo}
}

func (s *tournamentService) GetTournament(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return t, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, input ListTournamentsInput) ([]models.Tournament, error) {
	filter := repositories.ListTournamentsFilter{Limit: input.Limit, Offset: input.Offset}

	switch tt := models.TournamentType(input.Type); tt {
	case "":
	case models.TypeTournament, models.TypeScrim:
		filter.Type = &tt
	default:
		return nil, ValidationErrors{"type": fmt.Sprintf("must be %q or %q", models.TypeTournament, models.TypeScrim)}
	}
	if filter.Offset < 0 {
		return nil, ValidationErrors{"offset": "must not be negative"}
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	tournaments, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}
