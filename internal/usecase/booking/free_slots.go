package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/navalha-app/agenda-api/internal/config"
	domain "github.com/navalha-app/agenda-api/internal/domain/schedule"
	"github.com/navalha-app/agenda-api/internal/httperr"
	"github.com/navalha-app/agenda-api/internal/timezone"
)

type GetFreeSlotsInput struct {
	Date        string
	BarberName  string
	ServiceName string
}

type GetFreeSlots struct {
	repo domain.Repository
	cfg  *config.Config
}

func NewGetFreeSlots(repo domain.Repository, cfg *config.Config) *GetFreeSlots {
	return &GetFreeSlots{repo: repo, cfg: cfg}
}

func (uc *GetFreeSlots) Execute(
	ctx context.Context,
	in GetFreeSlotsInput,
) ([]string, error) {

	if in.Date == "" || in.BarberName == "" || in.ServiceName == "" {
		return nil, httperr.ErrBusiness("invalid_payload")
	}

	barber, err := uc.repo.GetBarberByName(ctx, in.BarberName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("barber_not_found")
		}
		return nil, err
	}

	service, err := uc.repo.GetServiceByName(ctx, in.ServiceName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}

	loc := timezone.Location(uc.cfg.Timezone)

	slots := domain.GenerateSlots(
		loc,
		in.Date,
		uc.cfg.WorkdayStart,
		uc.cfg.WorkdayEnd,
		service.DurationMin,
	)
	if len(slots) == 0 {
		return []string{}, nil
	}

	// Agendamentos do dia buscados uma vez só; o filtro roda em memória
	day, err := domain.DayRange(loc, in.Date)
	if err != nil {
		return nil, err
	}

	existing, err := uc.repo.ListAppointmentsForDay(ctx, barber.ID, day.Start, day.End)
	if err != nil {
		return nil, err
	}

	free := make([]string, 0, len(slots))
	for _, slot := range slots {
		rng, err := domain.BuildRange(loc, in.Date, slot, service.DurationMin)
		if err != nil {
			return nil, err
		}

		conflict := false
		for _, ap := range existing {
			if rng.Overlaps(domain.Range{Start: ap.StartTime, End: ap.EndTime}) {
				conflict = true
				break
			}
		}

		if !conflict {
			free = append(free, slot)
		}
	}

	return free, nil
}
