package booking

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// IDKind names the identity document an applicant signs in with.
type IDKind string

const (
	KindSAID     IDKind = "sa_id"
	KindPassport IDKind = "passport"
)

var (
	ErrUnknownIDKind   = errors.New("unknown identity document kind")
	ErrInvalidIDNumber = errors.New("invalid ID number")
	ErrInvalidPassport = errors.New("invalid passport number")
)

var passportPattern = regexp.MustCompile(`^[A-Z0-9]{6,9}$`)

// NormalizeIdentity trims whitespace and upper-cases passport numbers.
func NormalizeIdentity(kind IDKind, number string) string {
	number = strings.ReplaceAll(strings.TrimSpace(number), " ", "")
	if kind == KindPassport {
		number = strings.ToUpper(number)
	}
	return number
}

// ValidateIdentity checks the document number for its kind. This is a
// format and checksum check only; nothing is verified against a registry.
func ValidateIdentity(kind IDKind, number string) error {
	number = NormalizeIdentity(kind, number)
	switch kind {
	case KindSAID:
		return ValidateSAID(number)
	case KindPassport:
		if !passportPattern.MatchString(number) {
			return ErrInvalidPassport
		}
		return nil
	default:
		return ErrUnknownIDKind
	}
}

// ValidateSAID checks a 13 digit South African ID number: YYMMDD birth
// date, four sequence digits, a citizenship digit (0 citizen, 1 permanent
// resident, 2 refugee), one legacy digit and a Luhn check digit.
func ValidateSAID(number string) error {
	if len(number) != 13 {
		return ErrInvalidIDNumber
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return ErrInvalidIDNumber
		}
	}
	if !validBirthDate(number[:6]) {
		return ErrInvalidIDNumber
	}
	if c := number[10]; c != '0' && c != '1' && c != '2' {
		return ErrInvalidIDNumber
	}
	if !luhn(number) {
		return ErrInvalidIDNumber
	}
	return nil
}

// validBirthDate accepts YYMMDD when it is a real date in either the 1900s
// or the 2000s; the two digit year carries no century.
func validBirthDate(yymmdd string) bool {
	for _, century := range []string{"19", "20"} {
		if _, err := time.Parse("20060102", century+yymmdd); err == nil {
			return true
		}
	}
	return false
}

func luhn(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
