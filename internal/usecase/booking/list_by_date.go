package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/navalha-app/agenda-api/internal/config"
	domain "github.com/navalha-app/agenda-api/internal/domain/schedule"
	"github.com/navalha-app/agenda-api/internal/dto"
	"github.com/navalha-app/agenda-api/internal/httperr"
	"github.com/navalha-app/agenda-api/internal/timezone"
)

type ListByDateInput struct {
	Date     string
	BarberID *uuid.UUID
	Caller   Caller
}

type ListByDate struct {
	repo domain.Repository
	cfg  *config.Config
}

func NewListByDate(repo domain.Repository, cfg *config.Config) *ListByDate {
	return &ListByDate{repo: repo, cfg: cfg}
}

func (uc *ListByDate) Execute(
	ctx context.Context,
	in ListByDateInput,
) ([]dto.AppointmentListDTO, error) {

	if in.Date == "" {
		return nil, httperr.ErrBusiness("invalid_payload")
	}

	loc := timezone.Location(uc.cfg.Timezone)

	day, err := domain.DayRange(loc, in.Date)
	if err != nil {
		return nil, err
	}

	// Colaborador: só a própria agenda. Admin: filtro opcional ou todos.
	filter := in.BarberID
	if !in.Caller.IsAdmin() {
		filter = &in.Caller.BarberID
	}

	aps, err := uc.repo.ListAppointmentsByRange(ctx, day.Start, day.End, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, dto.AppointmentListDTO{
			ID:             ap.ID,
			StartTime:      ap.StartTime,
			EndTime:        ap.EndTime,
			Status:         ap.Status,
			Origin:         ap.Origin,
			BarberID:       ap.BarberID,
			BarberName:     ap.Barber.Name,
			ClientName:     ap.Client.Name,
			ClientWhatsapp: ap.Client.Whatsapp,
			ServiceName:    ap.Service.Name,
			DurationMin:    ap.Service.DurationMin,
			PriceCentavos:  ap.Service.PriceCentavos,
		})
	}

	return out, nil
}
