package cryptox

import (
	"golang.org/x/crypto/bcrypt"
)

// SecretHashCost is the bcrypt work factor applied to client secrets at
// rest. Raising it only affects newly issued secrets; stored hashes encode
// their own cost.
const SecretHashCost = 12

// HashSecret converts a plaintext secret into a salted one-way bcrypt hash
// suitable for storage. Each call salts independently, so hashing the same
// input twice yields different outputs.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), SecretHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifySecret reports whether plaintext matches the stored bcrypt hash.
// The comparison is constant-time with respect to the hash contents.
func VerifySecret(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
