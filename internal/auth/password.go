package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a salted bcrypt hash with the cost embedded in the
// output, so verification never depends on external parameters.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash. A
// malformed stored hash simply fails the comparison.
func CheckPassword(storedHash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}
