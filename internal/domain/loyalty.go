package domain

import "time"

// LoyaltyStamp штамп программы лояльности
// Ровно один создается на успешный коммит бронирования, в той же транзакции.
// Чисто аддитивная бухгалтерия: штампы никогда не удаляются.
type LoyaltyStamp struct {
	ID            int64
	ClientID      int64
	ReservationID int64
	// SequenceNumber порядковый номер штампа клиента (1, 2, 3, ...)
	SequenceNumber int
	// IsReward true, если этот штамп замыкает цикл вознаграждения
	IsReward  bool
	CreatedAt time.Time
}

// CompletesReward returns true if a stamp with the given sequence number
// completes a reward cycle for the configured threshold
func CompletesReward(sequenceNumber, stampsPerReward int) bool {
	return stampsPerReward > 0 && sequenceNumber%stampsPerReward == 0
}
