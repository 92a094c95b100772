package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// dateLayout formato de <input type="date">.
const dateLayout = "2006-01-02"

// Date fecha de entrada. Acepta "2006-01-02" (medianoche UTC) o RFC 3339 completo;
// se serializa como time.Time.
type Date struct {
	time.Time
}

// NewDate envuelve t.
func NewDate(t time.Time) Date { return Date{Time: t} }

// DatePtr envuelve t y devuelve un puntero, para los campos opcionales de Update.
func DatePtr(t time.Time) *Date {
	d := NewDate(t)
	return &d
}

// ParseDate interpreta s como fecha sola o como RFC 3339.
func ParseDate(s string) (Date, error) {
	if t, err := time.ParseInLocation(dateLayout, s, time.UTC); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Date{}, fmt.Errorf("fecha inválida %q: se espera YYYY-MM-DD o RFC 3339", s)
	}
	return Date{Time: t}, nil
}

// UnmarshalJSON acepta un string con cualquiera de los dos formatos; null deja la fecha en cero.
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("fecha inválida: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimePtr devuelve el time.Time de d, o nil si d es nil.
func (d *Date) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
