package tournament

import (
	"errors"
	"testing"
	"time"
)

var reference = time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

func validCard() Card {
	return Card{
		Number: "4111111111111111",
		Holder: "Ana García",
		Expiry: "12/2027",
		CVV:    "123",
	}
}

func TestCardValidateAcceptsCompleteCard(t *testing.T) {
	if err := validCard().Validate(reference); err != nil {
		t.Fatalf("expected valid card, got %v", err)
	}
}

func TestCardValidateMissingFields(t *testing.T) {
	cases := []struct {
		name string
		card Card
	}{
		{"no number", Card{Holder: "Ana", Expiry: "12/2027", CVV: "123"}},
		{"no holder", Card{Number: "4111111111111111", Expiry: "12/2027", CVV: "123"}},
		{"no expiry", Card{Number: "4111111111111111", Holder: "Ana", CVV: "123"}},
		{"no cvv", Card{Number: "4111111111111111", Holder: "Ana", Expiry: "12/2027"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.card.Validate(reference); !errors.Is(err, errCardIncomplete) {
				t.Fatalf("expected %v, got %v", errCardIncomplete, err)
			}
		})
	}
}

func TestCardValidateNumberLength(t *testing.T) {
	card := validCard()
	card.Number = "411111111111111" // 15 digits

	if err := card.Validate(reference); !errors.Is(err, errCardNumber) {
		t.Fatalf("expected %v, got %v", errCardNumber, err)
	}

	card.Number = "4111 1111 1111 1111"
	if err := card.Validate(reference); err != nil {
		t.Fatalf("spaces in the number should be ignored, got %v", err)
	}
}

func TestCardValidateCVV(t *testing.T) {
	card := validCard()
	card.CVV = "1234"

	if err := card.Validate(reference); !errors.Is(err, errCardCVV) {
		t.Fatalf("expected %v, got %v", errCardCVV, err)
	}
}

func TestCardValidateExpiryShape(t *testing.T) {
	card := validCard()
	card.Expiry = "12/27"

	if err := card.Validate(reference); !errors.Is(err, errCardExpiryShape) {
		t.Fatalf("expected %v, got %v", errCardExpiryShape, err)
	}
}

func TestCardValidateExpiryMonth(t *testing.T) {
	card := validCard()
	card.Expiry = "13/2027"

	if err := card.Validate(reference); !errors.Is(err, errCardExpiryMonth) {
		t.Fatalf("expected %v, got %v", errCardExpiryMonth, err)
	}
}

func TestCardValidateExpired(t *testing.T) {
	card := validCard()
	card.Expiry = "05/2026"

	if err := card.Validate(reference); !errors.Is(err, errCardExpired) {
		t.Fatalf("expected %v, got %v", errCardExpired, err)
	}

	// A card expiring in the reference month is still good.
	card.Expiry = "06/2026"
	if err := card.Validate(reference); err != nil {
		t.Fatalf("current-month expiry should be accepted, got %v", err)
	}
}
