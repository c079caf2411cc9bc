package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/navalha-app/agenda-api/internal/audit"
	"github.com/navalha-app/agenda-api/internal/config"
	"github.com/navalha-app/agenda-api/internal/lock"
	"github.com/navalha-app/agenda-api/internal/models"
	ucBooking "github.com/navalha-app/agenda-api/internal/usecase/booking"
)

// ------------------------------------------------------
// Fixtures
// ------------------------------------------------------

type stubRepo struct {
	barbers      []models.Barber
	services     []models.Service
	clients      map[string]*models.Client
	appointments []*models.Appointment
}

func newStubRepo() *stubRepo {
	return &stubRepo{clients: make(map[string]*models.Client)}
}

func (r *stubRepo) GetBarberByID(_ context.Context, id uuid.UUID) (*models.Barber, error) {
	for i := range r.barbers {
		if r.barbers[i].ID == id && r.barbers[i].Active {
			return &r.barbers[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) GetBarberByName(_ context.Context, name string) (*models.Barber, error) {
	for i := range r.barbers {
		if r.barbers[i].Name == name && r.barbers[i].Active {
			return &r.barbers[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) ListActiveBarbers(_ context.Context) ([]models.Barber, error) {
	return r.barbers, nil
}

func (r *stubRepo) GetServiceByName(_ context.Context, name string) (*models.Service, error) {
	for i := range r.services {
		if r.services[i].Name == name && r.services[i].Active {
			return &r.services[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) ListActiveServicesByIDs(_ context.Context, ids []uuid.UUID) ([]models.Service, error) {
	var out []models.Service
	for _, s := range r.services {
		for _, id := range ids {
			if s.ID == id && s.Active {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (r *stubRepo) GetOrCreateClient(_ context.Context, whatsapp, name string) (*models.Client, error) {
	if c, ok := r.clients[whatsapp]; ok {
		return c, nil
	}
	c := &models.Client{ID: uuid.New(), Whatsapp: whatsapp, Name: name}
	r.clients[whatsapp] = c
	return c, nil
}

func (r *stubRepo) HasConflict(_ context.Context, barberID uuid.UUID, start, end time.Time) (bool, error) {
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

func (r *stubRepo) CreateAppointments(_ context.Context, aps []*models.Appointment) error {
	for _, ap := range aps {
		if ap.ID == uuid.Nil {
			ap.ID = uuid.New()
		}
		r.appointments = append(r.appointments, ap)
	}
	return nil
}

func (r *stubRepo) GetAppointmentByID(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	for _, ap := range r.appointments {
		if ap.ID == id {
			return ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	return nil
}

func (r *stubRepo) ListAppointmentsForDay(_ context.Context, barberID uuid.UUID, start, end time.Time) ([]models.Appointment, error) {
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

func (r *stubRepo) ListAppointmentsByRange(_ context.Context, start, end time.Time, barberID *uuid.UUID) ([]models.Appointment, error) {
	return nil, nil
}

func webhookTestRouter(t *testing.T, repo *stubRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{
		Timezone:          "America/Sao_Paulo",
		DefaultBarberName: "Carlos",
		DefaultChatStatus: "confirmado",
		WorkdayStart:      "09:00",
		WorkdayEnd:        "18:00",
	}

	dispatcher := audit.NewDispatcher(audit.New(gdb))
	locker := lock.NewMemoryLocker()

	h := NewWebhookHandler(
		ucBooking.NewCreateChatBooking(repo, cfg, locker, dispatcher),
		ucBooking.NewGetFreeSlots(repo, cfg),
	)

	router := gin.New()
	router.POST("/webhook/sendbot/agendamento", h.CreateBooking)
	router.POST("/webhook/sendbot/horarios-disponiveis", h.ListFreeSlots)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ------------------------------------------------------
// Agendamento
// ------------------------------------------------------

func TestWebhookCreateBooking_Success(t *testing.T) {
	repo := newStubRepo()
	repo.barbers = append(repo.barbers, models.Barber{ID: uuid.New(), Name: "Carlos", Active: true})
	repo.services = append(repo.services, models.Service{ID: uuid.New(), Name: "Corte", DurationMin: 30, Active: true})

	router := webhookTestRouter(t, repo)

	rec := postJSON(t, router, "/webhook/sendbot/agendamento", gin.H{
		"cliente_nome":     "João",
		"cliente_whatsapp": "+5511999990000",
		"servico_nome":     "Corte",
		"data":             "2026-02-15",
		"hora":             "10:00",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t,
		"Seu horário foi agendado para 2026-02-15 às 10:00 com Carlos para Corte.",
		resp["mensagem"],
	)

	resumo, ok := resp["resumo_agendamento"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Carlos", resumo["barbeiro_nome"])
	assert.Equal(t, "confirmado", resumo["status"])

	require.Len(t, repo.appointments, 1)
}

func TestWebhookCreateBooking_ConflictIsSoftFailure(t *testing.T) {
	repo := newStubRepo()
	barber := models.Barber{ID: uuid.New(), Name: "Carlos", Active: true}
	repo.barbers = append(repo.barbers, barber)
	repo.services = append(repo.services, models.Service{ID: uuid.New(), Name: "Corte", DurationMin: 30, Active: true})

	loc, _ := time.LoadLocation("America/Sao_Paulo")
	start := time.Date(2026, 2, 15, 10, 0, 0, 0, loc).UTC()
	repo.appointments = append(repo.appointments, &models.Appointment{
		ID:        uuid.New(),
		BarberID:  barber.ID,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Status:    "confirmado",
	})

	router := webhookTestRouter(t, repo)

	rec := postJSON(t, router, "/webhook/sendbot/agendamento", gin.H{
		"cliente_whatsapp": "+5511999990000",
		"servico_nome":     "Corte",
		"data":             "2026-02-15",
		"hora":             "10:00",
	})

	// O bot espera 200 com corpo de erro para seguir o fluxo de reagendar
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "erro", resp["status"])
	assert.Equal(t, "conflito_horario", resp["motivo"])
	require.Len(t, repo.appointments, 1, "nothing new must be persisted")
}

func TestWebhookCreateBooking_MissingFields(t *testing.T) {
	router := webhookTestRouter(t, newStubRepo())

	rec := postJSON(t, router, "/webhook/sendbot/agendamento", gin.H{
		"servico_nome": "Corte",
		"data":         "2026-02-15",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "payload_invalido", resp["motivo"])
}

func TestWebhookCreateBooking_UnknownService(t *testing.T) {
	repo := newStubRepo()
	repo.barbers = append(repo.barbers, models.Barber{ID: uuid.New(), Name: "Carlos", Active: true})

	router := webhookTestRouter(t, repo)

	rec := postJSON(t, router, "/webhook/sendbot/agendamento", gin.H{
		"cliente_whatsapp": "+5511999990000",
		"servico_nome":     "Luzes",
		"data":             "2026-02-15",
		"hora":             "10:00",
	})

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "servico_nao_encontrado", resp["motivo"])
}

func TestWebhookCreateBooking_UnknownBarber(t *testing.T) {
	repo := newStubRepo()
	repo.services = append(repo.services, models.Service{ID: uuid.New(), Name: "Corte", DurationMin: 30, Active: true})

	router := webhookTestRouter(t, repo)

	rec := postJSON(t, router, "/webhook/sendbot/agendamento", gin.H{
		"cliente_whatsapp": "+5511999990000",
		"servico_nome":     "Corte",
		"barbeiro_nome":    "Ninguém",
		"data":             "2026-02-15",
		"hora":             "10:00",
	})

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "barbeiro_nao_encontrado", resp["motivo"])
}

// ------------------------------------------------------
// Horários disponíveis
// ------------------------------------------------------

func TestWebhookListFreeSlots_FullDay(t *testing.T) {
	repo := newStubRepo()
	repo.barbers = append(repo.barbers, models.Barber{ID: uuid.New(), Name: "Carlos", Active: true})
	repo.services = append(repo.services, models.Service{ID: uuid.New(), Name: "Corte", DurationMin: 30, Active: true})

	router := webhookTestRouter(t, repo)

	rec := postJSON(t, router, "/webhook/sendbot/horarios-disponiveis", gin.H{
		"data":          "2026-02-15",
		"barbeiro_nome": "Carlos",
		"servico_nome":  "Corte",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status   string   `json:"status"`
		Horarios []string `json:"horarios_disponiveis"`
		Mensagem string   `json:"mensagem"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.Len(t, resp.Horarios, 18)
	assert.Equal(t, "09:00", resp.Horarios[0])
	assert.Equal(t, "17:30", resp.Horarios[17])
	assert.Empty(t, resp.Mensagem)
}

func TestWebhookListFreeSlots_OccupiedSlotRemoved(t *testing.T) {
	repo := newStubRepo()
	barber := models.Barber{ID: uuid.New(), Name: "Carlos", Active: true}
	repo.barbers = append(repo.barbers, barber)
	repo.services = append(repo.services, models.Service{ID: uuid.New(), Name: "Corte", DurationMin: 30, Active: true})

	loc, _ := time.LoadLocation("America/Sao_Paulo")
	start := time.Date(2026, 2, 15, 10, 0, 0, 0, loc).UTC()
	repo.appointments = append(repo.appointments, &models.Appointment{
		ID:        uuid.New(),
		BarberID:  barber.ID,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Status:    "confirmado",
	})

	router := webhookTestRouter(t, repo)

	rec := postJSON(t, router, "/webhook/sendbot/horarios-disponiveis", gin.H{
		"data":          "2026-02-15",
		"barbeiro_nome": "Carlos",
		"servico_nome":  "Corte",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Horarios []string `json:"horarios_disponiveis"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Len(t, resp.Horarios, 17)
	assert.NotContains(t, resp.Horarios, "10:00")
	assert.Contains(t, resp.Horarios, "09:30")
	assert.Contains(t, resp.Horarios, "10:30")
}

func TestWebhookListFreeSlots_UnknownBarber(t *testing.T) {
	repo := newStubRepo()
	repo.services = append(repo.services, models.Service{ID: uuid.New(), Name: "Corte", DurationMin: 30, Active: true})

	router := webhookTestRouter(t, repo)

	rec := postJSON(t, router, "/webhook/sendbot/horarios-disponiveis", gin.H{
		"data":          "2026-02-15",
		"barbeiro_nome": "Ninguém",
		"servico_nome":  "Corte",
	})

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebhookListFreeSlots_MissingFields(t *testing.T) {
	router := webhookTestRouter(t, newStubRepo())

	rec := postJSON(t, router, "/webhook/sendbot/horarios-disponiveis", gin.H{
		"data": "2026-02-15",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
