package booking

import (
	"errors"
	"regexp"
	"strings"
)

// Card holds the payment card fields collected for card methods.
type Card struct {
	Number string `json:"numero_tarjeta"`
	Expiry string `json:"fecha_vencimiento"`
	CVV    string `json:"codigo_seguridad"`
}

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{4}$`)

// Validation errors surface the same Spanish copy the booking site shows.
var (
	ErrCardNumber = errors.New("Número de tarjeta inválido")
	ErrCardExpiry = errors.New("Fecha de vencimiento inválida (formato: MM/AAAA)")
	ErrCardCVV    = errors.New("Código de seguridad inválido")
)

// Validate checks the card fields for a single-slot booking. Spaces in
// the number are ignored; at least 13 digits are required. The expiry
// must be MM/AAAA with a real month and the CVV at least 3 characters.
func (c Card) Validate() error {
	digits := strings.ReplaceAll(c.Number, " ", "")
	if len(digits) < 13 {
		return ErrCardNumber
	}
	if !expiryPattern.MatchString(c.Expiry) {
		return ErrCardExpiry
	}
	if len(c.CVV) < 3 {
		return ErrCardCVV
	}
	return nil
}
