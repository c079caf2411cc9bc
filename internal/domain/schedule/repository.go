package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/navalha-app/agenda-api/internal/models"
)

type Repository interface {
	// -------- Barber --------
	GetBarberByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Barber, error)

	GetBarberByName(
		ctx context.Context,
		name string,
	) (*models.Barber, error)

	ListActiveBarbers(
		ctx context.Context,
	) ([]models.Barber, error)

	// -------- Service --------
	GetServiceByName(
		ctx context.Context,
		name string,
	) (*models.Service, error)

	ListActiveServicesByIDs(
		ctx context.Context,
		ids []uuid.UUID,
	) ([]models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		whatsapp string,
		name string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------
	HasConflict(
		ctx context.Context,
		barberID uuid.UUID,
		start time.Time,
		end time.Time,
	) (bool, error)

	CreateAppointments(
		ctx context.Context,
		aps []*models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability / listing --------
	ListAppointmentsForDay(
		ctx context.Context,
		barberID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsByRange(
		ctx context.Context,
		start time.Time,
		end time.Time,
		barberID *uuid.UUID,
	) ([]models.Appointment, error)
}
