package wizard

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultPasswordLength is the length of auto-generated role-user passwords.
const DefaultPasswordLength = 8

const (
	upperChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lowerChars  = "abcdefghijkmnpqrstuvwxyz"
	digitChars  = "23456789"
	symbolChars = "!@#$%&*+-?"
)

// GeneratePassword produces a random password of exactly length characters
// containing at least one uppercase letter, one lowercase letter, one digit
// and one symbol, then shuffles the result. length must be at least 4 to fit
// all character classes.
func GeneratePassword(length int) (string, error) {
	if length < 4 {
		return "", fmt.Errorf("password length %d too short, need at least 4", length)
	}

	all := upperChars + lowerChars + digitChars + symbolChars
	chars := make([]byte, 0, length)

	for _, set := range []string{upperChars, lowerChars, digitChars, symbolChars} {
		ch, err := randomFrom(set)
		if err != nil {
			return "", err
		}
		chars = append(chars, ch)
	}
	for len(chars) < length {
		ch, err := randomFrom(all)
		if err != nil {
			return "", err
		}
		chars = append(chars, ch)
	}

	// Fisher-Yates with crypto/rand so the class-guaranteed characters do
	// not cluster at the front.
	for i := len(chars) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", err
		}
		chars[i], chars[j] = chars[j], chars[i]
	}

	return string(chars), nil
}

func randomFrom(set string) (byte, error) {
	i, err := randomInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randomInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
