package domain

import "github.com/velline/salon-booking-service/pkg/types"

// BusyInterval занятый полуоткрытый интервал [Start, End) в минутах с начала суток
type BusyInterval struct {
	Start int
	End   int
}

// HasConflict проверяет строгое (небуферизованное) пересечение кандидата
// с занятыми интервалами. Это авторитетная проверка на этапе коммита:
// интервалы, граничащие друг с другом, конфликтом не считаются.
func HasConflict(candStart, candEnd int, busy []BusyInterval) bool {
	for _, b := range busy {
		if types.IntervalsOverlap(candStart, candEnd, b.Start, b.End) {
			return true
		}
	}
	return false
}

// HasBufferedConflict проверяет пересечение кандидата с занятыми интервалами,
// расширенными на buffer минут с обеих сторон. Используется ТОЛЬКО при
// выдаче слотов: буфер гарантирует мастеру время между клиентами,
// но не участвует в финальной проверке коммита.
func HasBufferedConflict(candStart, candEnd, buffer int, busy []BusyInterval) bool {
	for _, b := range busy {
		if candStart < b.End+buffer && candEnd > b.Start-buffer {
			return true
		}
	}
	return false
}

// BusyIntervalsFromReservations собирает занятые интервалы из записей,
// находящихся в блокирующем статусе. Отменённые записи безусловно
// исключаются из занятого множества.
func BusyIntervalsFromReservations(reservations []*Reservation) ([]BusyInterval, error) {
	busy := make([]BusyInterval, 0, len(reservations))
	for _, r := range reservations {
		if !r.IsBlocking() {
			continue
		}
		start, err := r.StartTime.ToMinutes()
		if err != nil {
			return nil, err
		}
		end, err := r.EndTime.ToMinutes()
		if err != nil {
			return nil, err
		}
		busy = append(busy, BusyInterval{Start: start, End: end})
	}
	return busy, nil
}
