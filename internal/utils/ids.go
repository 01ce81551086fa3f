package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a prefixed identifier like "tx_9f8a7b6c5d4e" using n hex
// characters of a fresh UUID.
func NewID(prefix string, n int) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(hex) {
		n = len(hex)
	}
	return prefix + "_" + hex[:n]
}

// NewVoucherCode returns an uppercase gift voucher code like "ZK3F9A12BC".
func NewVoucherCode() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ZK" + strings.ToUpper(hex[:8])
}
