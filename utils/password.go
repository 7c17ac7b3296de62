package utils

import (
	"errors"

	"github.com/matthewhartstonge/argon2"
)

var ErrEmptyPassword = errors.New("password is empty")

var passwordConfig = argon2.DefaultConfig()

// HashPassword returns the PHC-encoded argon2id hash of password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	encoded, err := passwordConfig.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func VerifyPassword(encodedHash, password string) (bool, error) {
	if encodedHash == "" {
		return false, nil
	}
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
