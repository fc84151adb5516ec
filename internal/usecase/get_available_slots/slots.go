package get_available_slots

import (
	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/pkg/types"
)

// generateSlots генерирует упорядоченный список допустимых времен начала
//
// Алгоритм: от начала рабочего дня с фиксированным шагом SlotStepMinutes
// (НЕ с шагом длительности услуги - длинная услуга всё равно может
// начинаться каждые 15 минут). Кандидат отбрасывается, если:
//   - услуга не успевает закончиться до конца рабочего дня
//     (дальше слоты уже не поместятся, итерация прекращается);
//   - кандидат пересекается с занятым интервалом, расширенным на
//     bufferMinutes с обеих сторон.
//
// Все аргументы в минутах с начала суток.
func generateSlots(workStart, workEnd, durationMinutes, bufferMinutes int, busy []domain.BusyInterval) ([]domain.AvailableSlot, error) {
	slots := make([]domain.AvailableSlot, 0)

	for start := workStart; ; start += domain.SlotStepMinutes {
		end := start + durationMinutes
		if end > workEnd {
			break
		}

		if domain.HasBufferedConflict(start, end, bufferMinutes, busy) {
			continue
		}

		startTime, err := types.FromMinutes(start)
		if err != nil {
			return nil, err
		}
		slots = append(slots, domain.AvailableSlot{
			StartTime:       startTime,
			DurationMinutes: durationMinutes,
		})
	}

	return slots, nil
}
