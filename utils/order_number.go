package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNumber membuat nomor order yang unik secara konstruksi:
// timestamp milidetik + suffix acak dari UUID. Nomor ini human-readable
// dan bukan primary key; collision praktis tidak mungkin terjadi.
// Skema yang sama dipakai untuk correlation id ke Midtrans.
func GenerateOrderNumber() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("ORDER-%d-%s", time.Now().UnixMilli(), suffix)
}
