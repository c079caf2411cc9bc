package schedule

import "time"

// GenerateSlots gera todos os horários de início possíveis no dia, andando de
// durationMinutes em durationMinutes a partir do início do expediente. Slots
// são contíguos e dimensionados pela duração do serviço, não por uma grade
// fixa. Janela vazia ou serviço que não cabe devolvem lista vazia, não erro.
func GenerateSlots(loc *time.Location, date, workStart, workEnd string, durationMinutes int) []string {
	if durationMinutes <= 0 {
		return nil
	}

	start, err := time.ParseInLocation(dateTimeLayout, date+" "+workStart, loc)
	if err != nil {
		return nil
	}

	end, err := time.ParseInLocation(dateTimeLayout, date+" "+workEnd, loc)
	if err != nil {
		return nil
	}

	if !end.After(start) {
		return nil
	}

	step := time.Duration(durationMinutes) * time.Minute

	var slots []string
	for cur := start; !cur.Add(step).After(end); cur = cur.Add(step) {
		slots = append(slots, cur.Format(clockLayout))
	}

	return slots
}
