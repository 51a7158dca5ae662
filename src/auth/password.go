package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted bcrypt digest from the plaintext password.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a supplied plaintext password against a stored
// digest. The plaintext is never hashed before the comparison; bcrypt
// extracts the salt from the digest itself.
func CheckPassword(plaintext string, digest []byte) bool {
	return bcrypt.CompareHashAndPassword(digest, []byte(plaintext)) == nil
}
