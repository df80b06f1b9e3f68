package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateResetCode generates a random 6-digit one-time code
func GenerateResetCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
