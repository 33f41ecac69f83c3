package service

import (
	"fmt"
	"time"
)

type qrCodeGenerator struct {
	now func() time.Time
}

// NewQRCodeGenerator returns the catalog code generator. Codes embed the key
// and a nanosecond timestamp so re-registering the same ISBN yields a fresh
// code.
func NewQRCodeGenerator() CodeGenerator {
	return &qrCodeGenerator{now: time.Now}
}

func (g *qrCodeGenerator) Generate(key string) string {
	return fmt.Sprintf("QR-%s-%d", key, g.now().UnixNano())
}
