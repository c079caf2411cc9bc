package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/navalha-app/agenda-api/internal/audit"
	"github.com/navalha-app/agenda-api/internal/config"
	domain "github.com/navalha-app/agenda-api/internal/domain/schedule"
	"github.com/navalha-app/agenda-api/internal/httperr"
	"github.com/navalha-app/agenda-api/internal/models"
	"github.com/navalha-app/agenda-api/internal/timezone"
)

type ChangeStatusInput struct {
	AppointmentID uuid.UUID
	NewStatus     string
	Caller        Caller
}

type ChangeStatus struct {
	repo  domain.Repository
	cfg   *config.Config
	audit *audit.Dispatcher
}

func NewChangeStatus(
	repo domain.Repository,
	cfg *config.Config,
	audit *audit.Dispatcher,
) *ChangeStatus {
	return &ChangeStatus{
		repo:  repo,
		cfg:   cfg,
		audit: audit,
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	in ChangeStatusInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	if !in.Caller.IsAdmin() && ap.BarberID != in.Caller.BarberID {
		return nil, httperr.ErrBusiness("forbidden_appointment")
	}

	from := domain.Status(ap.Status)
	to := domain.Status(in.NewStatus)

	if err := domain.CanTransition(from, to); err != nil {
		return nil, err
	}

	ap.Status = string(to)
	if to == domain.StatusCancelled && ap.CancelledAt == nil {
		now := timezone.NowIn(uc.cfg.Timezone)
		ap.CancelledAt = &now
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: &in.Caller.BarberID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"de": from, "para": to},
	})

	return ap, nil
}
