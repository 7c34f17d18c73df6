package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is intentionally modest: the only secret hashed here is the
// placeholder admin credential, hashed once at startup.
const BcryptCost = 10

// HashPassword hashes a password with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword reports whether password matches hashedPassword
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
