package auth

import "golang.org/x/crypto/bcrypt"

// PasswordVerifier checks a plaintext password against its stored hash.
// The user store hashes on write; verification is the only operation the
// auth layer needs.
type PasswordVerifier interface {
	// Compare returns nil when the plaintext matches the hash, an error
	// otherwise.
	Compare(hashedPassword, password string) error
}

// BcryptVerifier is the production PasswordVerifier, backed by bcrypt.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Compare implements PasswordVerifier.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
