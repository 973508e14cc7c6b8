package service

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	otpMin = 100000
	otpMax = 999999
)

// OTPGenerator returns a fresh one-time code.
type OTPGenerator func() (string, error)

// RandomOTP draws a six digit code uniformly from [100000, 999999].
func RandomOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+otpMin, 10), nil
}
