package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/navalha-app/agenda-api/internal/audit"
	"github.com/navalha-app/agenda-api/internal/config"
	"github.com/navalha-app/agenda-api/internal/models"
)

// ------------------------------------------------------
// Fixtures
// ------------------------------------------------------

func testConfig() *config.Config {
	return &config.Config{
		Timezone:          "America/Sao_Paulo",
		DefaultBarberName: "Carlos",
		DefaultChatStatus: "confirmado",
		WorkdayStart:      "09:00",
		WorkdayEnd:        "18:00",
	}
}

// newTestAudit monta um dispatcher real sobre um banco mockado; inserts de
// auditoria falham em silêncio, que é exatamente o contrato do dispatcher.
func newTestAudit(t *testing.T) *audit.Dispatcher {
	t.Helper()

	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}

	return audit.NewDispatcher(audit.New(gdb))
}

// newObservedAudit expõe o mock para testes que afirmam quais eventos de
// auditoria realmente chegam ao banco.
func newObservedAudit(t *testing.T) (*audit.Dispatcher, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}

	return audit.NewDispatcher(audit.New(gdb)), mock
}

// ------------------------------------------------------
// Fake repository (in-memory)
// ------------------------------------------------------

type fakeRepo struct {
	barbers      []models.Barber
	services     []models.Service
	clients      map[string]*models.Client
	appointments []*models.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{clients: make(map[string]*models.Client)}
}

func (r *fakeRepo) addBarber(name string, active bool) models.Barber {
	b := models.Barber{ID: uuid.New(), Name: name, Active: active, Role: "colaborador"}
	r.barbers = append(r.barbers, b)
	return b
}

func (r *fakeRepo) addService(name string, minutes int, active bool) models.Service {
	s := models.Service{ID: uuid.New(), Name: name, DurationMin: minutes, Active: active}
	r.services = append(r.services, s)
	return s
}

func (r *fakeRepo) addAppointment(barberID uuid.UUID, start, end time.Time, status string) *models.Appointment {
	ap := &models.Appointment{
		ID:        uuid.New(),
		BarberID:  barberID,
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
	r.appointments = append(r.appointments, ap)
	return ap
}

func (r *fakeRepo) GetBarberByID(_ context.Context, id uuid.UUID) (*models.Barber, error) {
	for i := range r.barbers {
		if r.barbers[i].ID == id && r.barbers[i].Active {
			return &r.barbers[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetBarberByName(_ context.Context, name string) (*models.Barber, error) {
	for i := range r.barbers {
		if r.barbers[i].Name == name && r.barbers[i].Active {
			return &r.barbers[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) ListActiveBarbers(_ context.Context) ([]models.Barber, error) {
	var out []models.Barber
	for _, b := range r.barbers {
		if b.Active {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetServiceByName(_ context.Context, name string) (*models.Service, error) {
	for i := range r.services {
		if r.services[i].Name == name && r.services[i].Active {
			return &r.services[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) ListActiveServicesByIDs(_ context.Context, ids []uuid.UUID) ([]models.Service, error) {
	var out []models.Service
	for _, s := range r.services {
		if !s.Active {
			continue
		}
		for _, id := range ids {
			if s.ID == id {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeRepo) GetOrCreateClient(_ context.Context, whatsapp, name string) (*models.Client, error) {
	if c, ok := r.clients[whatsapp]; ok {
		if c.Name == "" && name != "" {
			c.Name = name
		}
		return c, nil
	}

	c := &models.Client{ID: uuid.New(), Whatsapp: whatsapp, Name: name}
	r.clients[whatsapp] = c
	return c, nil
}

func (r *fakeRepo) HasConflict(_ context.Context, barberID uuid.UUID, start, end time.Time) (bool, error) {
	for _, ap := range r.appointments {
		if ap.BarberID != barberID || ap.Status == "cancelado" {
			continue
		}
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) CreateAppointments(_ context.Context, aps []*models.Appointment) error {
	for _, ap := range aps {
		if ap.ID == uuid.Nil {
			ap.ID = uuid.New()
		}
		r.appointments = append(r.appointments, ap)
	}
	return nil
}

func (r *fakeRepo) GetAppointmentByID(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	for _, ap := range r.appointments {
		if ap.ID == id {
			return ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i, cur := range r.appointments {
		if cur.ID == ap.ID {
			r.appointments[i] = ap
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRepo) ListAppointmentsForDay(_ context.Context, barberID uuid.UUID, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID != barberID || ap.Status == "cancelado" {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsByRange(_ context.Context, start, end time.Time, barberID *uuid.UUID) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if barberID != nil && ap.BarberID != *barberID {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			cp := *ap
			for _, b := range r.barbers {
				if b.ID == ap.BarberID {
					cp.Barber = b
				}
			}
			for _, s := range r.services {
				if s.ID == ap.ServiceID {
					cp.Service = s
				}
			}
			for _, c := range r.clients {
				if c.ID == ap.ClientID {
					cp.Client = *c
				}
			}
			out = append(out, cp)
		}
	}
	return out, nil
}
