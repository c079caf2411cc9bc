package booking

import (
	"context"
	"errors"
	"strings"

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
// INPUT / OUTPUT
// ======================================================

type CreateChatBookingInput struct {
	ClientWhatsapp string
	ClientName     string
	ServiceName    string
	BarberName     string
	Date           string
	Time           string
}

// ChatBookingSummary alimenta a mensagem de confirmação do bot
type ChatBookingSummary struct {
	ID             uuid.UUID `json:"id"`
	ClientName     string    `json:"cliente_nome"`
	ClientWhatsapp string    `json:"cliente_whatsapp"`
	ServiceName    string    `json:"servico_nome"`
	BarberName     string    `json:"barbeiro_nome"`
	Date           string    `json:"data"`
	Time           string    `json:"hora"`
	Status         string    `json:"status"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateChatBooking struct {
	repo   domain.Repository
	cfg    *config.Config
	locker lock.Locker
	audit  *audit.Dispatcher
}

func NewCreateChatBooking(
	repo domain.Repository,
	cfg *config.Config,
	locker lock.Locker,
	audit *audit.Dispatcher,
) *CreateChatBooking {
	return &CreateChatBooking{
		repo:   repo,
		cfg:    cfg,
		locker: locker,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateChatBooking) Execute(
	ctx context.Context,
	in CreateChatBookingInput,
) (*ChatBookingSummary, error) {

	// --------------------------------------------------
	// 1. Payload (nome do cliente é opcional, barbeiro tem default)
	// --------------------------------------------------
	in.ClientWhatsapp = strings.TrimSpace(in.ClientWhatsapp)
	in.ClientName = strings.TrimSpace(in.ClientName)

	if in.ClientWhatsapp == "" ||
		in.ServiceName == "" ||
		in.Date == "" ||
		in.Time == "" {
		return nil, httperr.ErrBusiness("invalid_payload")
	}

	if in.BarberName == "" {
		in.BarberName = uc.cfg.DefaultBarberName
	}

	// --------------------------------------------------
	// 2. Cliente
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(ctx, in.ClientWhatsapp, in.ClientName)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Serviço
	// --------------------------------------------------
	service, err := uc.repo.GetServiceByName(ctx, in.ServiceName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 4. Barbeiro
	// --------------------------------------------------
	barber, err := uc.repo.GetBarberByName(ctx, in.BarberName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("barber_not_found")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 5. Intervalo
	// --------------------------------------------------
	loc := timezone.Location(uc.cfg.Timezone)

	rng, err := domain.BuildRange(loc, in.Date, in.Time, service.DurationMin)
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

	conflict, err := uc.repo.HasConflict(ctx, barber.ID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	if conflict {
		uc.audit.Dispatch(audit.Event{
			BarberID: &barber.ID,
			Action:   "appointment_conflict",
			Entity:   "appointment",
			Metadata: map[string]any{"start": rng.Start, "end": rng.End},
		})
		return nil, httperr.ErrBusiness("time_conflict")
	}

	status := domain.DefaultChatStatus(uc.cfg.DefaultChatStatus)

	ap := &models.Appointment{
		BarberID:  barber.ID,
		ClientID:  client.ID,
		ServiceID: service.ID,
		StartTime: rng.Start,
		EndTime:   rng.End,
		Status:    string(status),
		Origin:    string(domain.OriginChat),
	}

	if err := uc.repo.CreateAppointments(ctx, []*models.Appointment{ap}); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: &barber.ID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"origem": domain.OriginChat},
	})

	// --------------------------------------------------
	// 8. Resumo para o canal
	// --------------------------------------------------
	return &ChatBookingSummary{
		ID:             ap.ID,
		ClientName:     client.Name,
		ClientWhatsapp: client.Whatsapp,
		ServiceName:    service.Name,
		BarberName:     barber.Name,
		Date:           in.Date,
		Time:           in.Time,
		Status:         string(status),
	}, nil
}
