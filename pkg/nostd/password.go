package nostd

import (
	"net/mail"

	"golang.org/x/crypto/bcrypt"
)

func BcryptEncode(password []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
}

func BcryptMatch(hashedPassword, password []byte) error {
	return bcrypt.CompareHashAndPassword(hashedPassword, password)
}

// IsEmail 只接受纯地址，不接受 "Name <addr>" 形式
func IsEmail(address string) bool {
	parsed, err := mail.ParseAddress(address)
	return err == nil && parsed.Address == address
}
