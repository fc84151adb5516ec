package promote_waitlist

import (
	"time"

	"github.com/velline/salon-booking-service/pkg/types"
)

// Request описывает освободившийся слот после отмены записи
type Request struct {
	StaffID int64
	Date    time.Time
	// FreedStart/FreedEnd интервал отмененной записи; попадает в
	// уведомление, чтобы клиент знал, какое время освободилось
	FreedStart types.TimeString
	FreedEnd   types.TimeString
	// ServiceIDs услуги отменённой записи в порядке строк;
	// кандидат ищется по каждой, продвигается не более одного
	ServiceIDs []int64
}

// Response результат продвижения листа ожидания
type Response struct {
	// Promoted false означает, что подходящих записей не нашлось;
	// это не ошибка
	Promoted bool
	EntryID  int64
	ClientID int64
}
