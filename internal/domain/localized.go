package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LocalizedText непрозрачное мультиязычное значение: язык -> текст
// Движок бронирования никогда не интерпретирует содержимое, только
// передает его дальше (в ответы API и параметры уведомлений)
type LocalizedText map[string]string

// Get возвращает текст для языка, с фолбэком на любой имеющийся
func (t LocalizedText) Get(lang string) string {
	if v, ok := t[lang]; ok {
		return v
	}
	for _, v := range t {
		return v
	}
	return ""
}

// Value реализует driver.Valuer (JSONB колонка)
func (t LocalizedText) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

// Scan реализует sql.Scanner
func (t *LocalizedText) Scan(src interface{}) error {
	if src == nil {
		*t = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("domain: cannot scan LocalizedText from %T", src)
	}
	return json.Unmarshal(data, t)
}
