package tournament

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Card holds the payment card fields for the tournament payment step.
// The tournament form is stricter than the single-slot one: it requires
// the holder name, exactly 16 digits and a 3-digit CVV, and rejects
// expired cards.
type Card struct {
	Number string `json:"numero_tarjeta"`
	Holder string `json:"nombre_titular"`
	Expiry string `json:"fecha_vencimiento"`
	CVV    string `json:"cvv"`
}

var (
	numberPattern = regexp.MustCompile(`^\d{16}$`)
	cvvPattern    = regexp.MustCompile(`^\d{3}$`)
	expiryPattern = regexp.MustCompile(`^\d{2}/\d{4}$`)
)

var (
	errCardIncomplete  = errors.New("Debe completar todos los datos de la tarjeta")
	errCardNumber      = errors.New("El número de tarjeta debe tener 16 dígitos")
	errCardCVV         = errors.New("El CVV debe tener 3 dígitos")
	errCardExpiryShape = errors.New("La fecha de vencimiento debe tener el formato MM/AAAA")
	errCardExpiryMonth = errors.New("El mes debe estar entre 01 y 12")
	errCardExpired     = errors.New("La tarjeta está vencida")
)

// Validate checks the card against the reference time. A card expiring
// in the current month is still accepted.
func (c Card) Validate(now time.Time) error {
	if c.Number == "" || c.Holder == "" || c.Expiry == "" || c.CVV == "" {
		return errCardIncomplete
	}
	if !numberPattern.MatchString(strings.ReplaceAll(c.Number, " ", "")) {
		return errCardNumber
	}
	if !cvvPattern.MatchString(c.CVV) {
		return errCardCVV
	}
	if !expiryPattern.MatchString(c.Expiry) {
		return errCardExpiryShape
	}

	monthText, yearText, _ := strings.Cut(c.Expiry, "/")
	month, _ := strconv.Atoi(monthText)
	year, _ := strconv.Atoi(yearText)
	if month < 1 || month > 12 {
		return errCardExpiryMonth
	}
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return errCardExpired
	}
	return nil
}
