package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/navalha-app/agenda-api/internal/config"
	domain "github.com/navalha-app/agenda-api/internal/domain/schedule"
	"github.com/navalha-app/agenda-api/internal/httperr"
	"github.com/navalha-app/agenda-api/internal/timezone"
)

type GetFreeBarbersInput struct {
	Date            string
	Time            string
	DurationMinutes int
}

type BarberSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"nome"`
}

type GetFreeBarbers struct {
	repo domain.Repository
	cfg  *config.Config
}

func NewGetFreeBarbers(repo domain.Repository, cfg *config.Config) *GetFreeBarbers {
	return &GetFreeBarbers{repo: repo, cfg: cfg}
}

// Execute devolve os barbeiros ativos livres para um intervalo candidato.
// Checagem sequencial por barbeiro: a barbearia tem poucos barbeiros.
func (uc *GetFreeBarbers) Execute(
	ctx context.Context,
	in GetFreeBarbersInput,
) ([]BarberSummary, error) {

	if in.Date == "" || in.Time == "" || in.DurationMinutes < 1 {
		return nil, httperr.ErrBusiness("invalid_payload")
	}

	loc := timezone.Location(uc.cfg.Timezone)

	rng, err := domain.BuildRange(loc, in.Date, in.Time, in.DurationMinutes)
	if err != nil {
		return nil, err
	}

	barbers, err := uc.repo.ListActiveBarbers(ctx)
	if err != nil {
		return nil, err
	}

	free := make([]BarberSummary, 0, len(barbers))
	for _, b := range barbers {
		conflict, err := uc.repo.HasConflict(ctx, b.ID, rng.Start, rng.End)
		if err != nil {
			return nil, err
		}
		if !conflict {
			free = append(free, BarberSummary{ID: b.ID, Name: b.Name})
		}
	}

	return free, nil
}
