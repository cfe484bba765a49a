package filesvc

import (
	"strings"

	"github.com/google/uuid"
)

// KeyGenerator выдаёт уникальные (с подавляющей вероятностью) ключи загрузок.
type KeyGenerator interface {
	NewKey() string
}

// UUIDKeys генерирует ключи из UUID v4 без дефисов (32 hex-символа).
type UUIDKeys struct{}

func (UUIDKeys) NewKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
