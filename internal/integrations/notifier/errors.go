package notifier

import "errors"

var (
	// ErrPublish возвращается, когда сообщение не удалось опубликовать
	// Вызывающий код логирует и проглатывает эту ошибку: сбой уведомления
	// никогда не откатывает успешное бронирование
	ErrPublish = errors.New("notifier client: failed to publish message")
)
