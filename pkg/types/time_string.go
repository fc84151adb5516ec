package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeFormat возвращается при некорректном формате времени
var ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// TimeString время в формате "HH:MM" (wall-clock, без таймзоны)
// Хранится как строка, чтобы исключить неявные конвертации таймзон:
// всё расписание салона живёт в локальном времени салона.
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// FromMinutes создает TimeString из количества минут с начала суток
// Часы и минуты дополняются нулями ("09:05")
func FromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= MinutesPerDay {
		return "", fmt.Errorf("%w: %d minutes is out of day range", ErrInvalidTimeFormat, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate проверяет, что значение соответствует формату HH:MM (00:00-23:59)
func (t TimeString) Validate() error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	for _, i := range []int{0, 1, 3, 4} {
		if t[i] < '0' || t[i] > '9' {
			return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
		}
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	minutes := int(t[3]-'0')*10 + int(t[4]-'0')
	if hours > 23 || minutes > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

// IsZero возвращает true, если значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// ToMinutes возвращает количество минут с начала суток
func (t TimeString) ToMinutes() (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	minutes := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + minutes, nil
}

// AddMinutes возвращает время, сдвинутое на delta минут вперед
// Выход за пределы суток считается ошибкой: рабочий день салона не пересекает полночь
func (t TimeString) AddMinutes(delta int) (TimeString, error) {
	m, err := t.ToMinutes()
	if err != nil {
		return "", err
	}
	return FromMinutes(m + delta)
}

// IsBefore возвращает true, если t строго раньше other
// Для валидных значений "HH:MM" лексикографическое сравнение совпадает с числовым
func (t TimeString) IsBefore(other TimeString) bool {
	return t < other
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t > other
}

// IntervalsOverlap проверяет пересечение двух полуоткрытых интервалов [startA, endA) и [startB, endB)
// Интервалы, которые только касаются границами, НЕ пересекаются:
// это позволяет записывать клиентов встык при нулевом буфере
func IntervalsOverlap(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}

// Value реализует driver.Valuer для сохранения в БД
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Поддерживает TIME колонки (time.Time / "15:04:05") и текстовые колонки
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeFormat, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// TIME колонки приходят как "HH:MM:SS", отбрасываем секунды
	if len(s) >= 5 {
		s = s[:5]
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}
