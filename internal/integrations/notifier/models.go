package notifier

// TemplateType тип шаблона уведомления
// Текст шаблонов и канал доставки принадлежат сервису уведомлений;
// движок бронирования только называет шаблон и передает параметры
type TemplateType string

const (
	TemplateBookingCreated    TemplateType = "booking_created"
	TemplateBookingCancelled  TemplateType = "booking_cancelled"
	TemplateReminder24h       TemplateType = "reminder_24h"
	TemplateReminder2h        TemplateType = "reminder_2h"
	TemplateWaitlistAvailable TemplateType = "waitlist_available"
	TemplateReviewRequest     TemplateType = "review_request"
)

// Message сообщение для сервиса уведомлений
type Message struct {
	ClientID     int64             `json:"client_id"`
	TemplateType TemplateType      `json:"template_type"`
	Language     string            `json:"language"`
	Params       map[string]string `json:"params"`
	EnqueuedAt   string            `json:"enqueued_at"`
}
