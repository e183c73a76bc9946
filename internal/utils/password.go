package utils

import "golang.org/x/crypto/bcrypt"

// Account passwords are only ever stored as bcrypt hashes. The cost comes
// from configuration so tests can run at the minimum while production uses a
// slow setting.

// HashPassword hashes a plaintext password at the given bcrypt cost. Costs
// outside bcrypt's supported range surface as an error rather than being
// silently clamped.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", bcrypt.InvalidCostError(cost)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored hash. It never
// distinguishes why a comparison failed; login responses must not leak
// whether an account exists or which part of the credential was wrong.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
