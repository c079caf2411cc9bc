package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/navalha-app/agenda-api/internal/audit"
	"github.com/navalha-app/agenda-api/internal/config"
	domain "github.com/navalha-app/agenda-api/internal/domain/schedule"
	"github.com/navalha-app/agenda-api/internal/httperr"
	"github.com/navalha-app/agenda-api/internal/lock"
	"github.com/navalha-app/agenda-api/internal/models"
	"github.com/navalha-app/agenda-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ClientName     string
	ClientWhatsapp string

	ServiceIDs []uuid.UUID
	BarberID   uuid.UUID

	Date string
	Time string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	cfg    *config.Config
	locker lock.Locker
	audit  *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	cfg *config.Config,
	locker lock.Locker,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		cfg:    cfg,
		locker: locker,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) ([]models.Appointment, error) {

	// --------------------------------------------------
	// 1. Payload
	// --------------------------------------------------
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientWhatsapp = strings.TrimSpace(in.ClientWhatsapp)

	if in.ClientName == "" ||
		in.ClientWhatsapp == "" ||
		len(in.ServiceIDs) == 0 ||
		in.BarberID == uuid.Nil ||
		in.Date == "" ||
		in.Time == "" {
		return nil, httperr.ErrBusiness("invalid_payload")
	}

	// --------------------------------------------------
	// 2. Cliente (get or create, backfill de nome)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(ctx, in.ClientWhatsapp, in.ClientName)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Serviços (todos ativos, na ordem pedida)
	// --------------------------------------------------
	services, err := uc.resolveServices(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	totalMinutes := 0
	for _, s := range services {
		totalMinutes += s.DurationMin
	}

	// --------------------------------------------------
	// 4. Barbeiro
	// --------------------------------------------------
	barber, err := uc.repo.GetBarberByID(ctx, in.BarberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("barber_not_found")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 5. Bloco completo da reserva
	// --------------------------------------------------
	loc := timezone.Location(uc.cfg.Timezone)

	block, err := domain.BuildRange(loc, in.Date, in.Time, totalMinutes)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Conflito + 7. Persistência, serializados por barbeiro
	// --------------------------------------------------
	release, err := uc.locker.Acquire(ctx, barber.ID.String()+":"+in.Date)
	if err != nil {
		return nil, err
	}
	defer release()

	conflict, err := uc.repo.HasConflict(ctx, barber.ID, block.Start, block.End)
	if err != nil {
		return nil, err
	}
	if conflict {
		uc.audit.Dispatch(audit.Event{
			BarberID: &barber.ID,
			Action:   "appointment_conflict",
			Entity:   "appointment",
			Metadata: map[string]any{"start": block.Start, "end": block.End},
		})
		return nil, httperr.ErrBusiness("time_conflict")
	}

	// Um agendamento por serviço, encadeados de costas um no outro
	aps := make([]*models.Appointment, 0, len(services))
	cursor := block.Start
	for _, s := range services {
		end := cursor.Add(time.Duration(s.DurationMin) * time.Minute)

		aps = append(aps, &models.Appointment{
			BarberID:  barber.ID,
			ClientID:  client.ID,
			ServiceID: s.ID,
			StartTime: cursor,
			EndTime:   end,
			Status:    string(domain.StatusConfirmed),
			Origin:    string(domain.OriginManual),
		})

		cursor = end
	}

	if err := uc.repo.CreateAppointments(ctx, aps); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 8. Auditoria + resultado
	// --------------------------------------------------
	created := make([]models.Appointment, 0, len(aps))
	for _, ap := range aps {
		uc.audit.Dispatch(audit.Event{
			BarberID: &barber.ID,
			Action:   "appointment_created",
			Entity:   "appointment",
			EntityID: &ap.ID,
		})
		created = append(created, *ap)
	}

	return created, nil
}

func (uc *CreateBooking) resolveServices(
	ctx context.Context,
	ids []uuid.UUID,
) ([]models.Service, error) {

	found, err := uc.repo.ListActiveServicesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	ordered := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		ordered = append(ordered, s)
	}

	return ordered, nil
}
