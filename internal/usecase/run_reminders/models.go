package run_reminders

import "time"

// Request модель запроса на прогон сканов напоминаний
// Now передается извне: cron-триггер определяет момент, движок - логику
type Request struct {
	Now time.Time
}

// Response количество отправленных уведомлений по каждому скану
type Response struct {
	Reminders24h   int
	Reminders2h    int
	ReviewRequests int
}

// Total возвращает суммарное количество обработанных уведомлений
func (r *Response) Total() int {
	return r.Reminders24h + r.Reminders2h + r.ReviewRequests
}
