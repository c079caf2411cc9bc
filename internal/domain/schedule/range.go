package schedule

import (
	"time"

	"github.com/navalha-app/agenda-api/internal/httperr"
)

const (
	dateLayout     = "2006-01-02"
	clockLayout    = "15:04"
	dateTimeLayout = "2006-01-02 15:04"
)

// Range é um intervalo absoluto [Start, End), sempre em UTC
type Range struct {
	Start time.Time
	End   time.Time
}

// Overlaps usa intervalo aberto: encostar (end == start) não conflita
func (r Range) Overlaps(o Range) bool {
	return r.Start.Before(o.End) && r.End.After(o.Start)
}

// BuildRange interpreta data+hora como horário civil no timezone da barbearia
// e devolve os instantes absolutos em UTC.
func BuildRange(loc *time.Location, date, clock string, durationMinutes int) (Range, error) {
	if durationMinutes <= 0 {
		return Range{}, httperr.ErrBusiness("invalid_date_or_time")
	}

	start, err := time.ParseInLocation(dateTimeLayout, date+" "+clock, loc)
	if err != nil {
		return Range{}, httperr.ErrBusiness("invalid_date_or_time")
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	return Range{
		Start: start.UTC(),
		End:   end.UTC(),
	}, nil
}

// DayRange devolve a janela [00:00, 00:00 do dia seguinte) do dia civil, em UTC
func DayRange(loc *time.Location, date string) (Range, error) {
	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return Range{}, httperr.ErrBusiness("invalid_date_or_time")
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	return Range{
		Start: start.UTC(),
		End:   start.Add(24 * time.Hour).UTC(),
	}, nil
}
