package shift

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// breaksJSON перерывы смены в колонке JSONB
type breaksJSON []domain.Break

func (b breaksJSON) Value() (driver.Value, error) {
	if b == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]domain.Break(b))
}

func (b *breaksJSON) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*b = breaksJSON{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("shift.breaks: unsupported type %T", src)
	}

	var list []domain.Break
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("shift.breaks: %w", err)
	}
	*b = list
	return nil
}
