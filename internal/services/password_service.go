package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"expense-tracker/internal/config"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	saltLength = 16
	keyLength  = 32

	// MaxPasswordLength bounds hashing cost for oversized inputs.
	MaxPasswordLength = 128
)

var (
	ErrPasswordEmpty   = errors.New("password cannot be empty")
	ErrPasswordTooLong = fmt.Errorf("password must not exceed %d characters", MaxPasswordLength)

	bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}
)

// argonParams are the argon2id cost parameters encoded into every hash.
type argonParams struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

// PasswordService hashes passwords with argon2id and verifies argon2id or legacy bcrypt hashes
type PasswordService struct {
	params argonParams
}

// NewPasswordService creates a password service using the configured argon2id costs
func NewPasswordService(securityConfig *config.SecurityConfig) PasswordServiceInterface {
	params := argonParams{
		memory:      securityConfig.ArgonMemoryKiB,
		iterations:  securityConfig.ArgonIterations,
		parallelism: securityConfig.ArgonParallelism,
	}
	if params.iterations == 0 {
		params.iterations = 1
	}
	if params.parallelism == 0 {
		params.parallelism = 1
	}

	return &PasswordService{params: params}
}

// HashPassword returns a PHC-encoded argon2id hash:
// $argon2id$v=19$m=<KiB>,t=<iterations>,p=<parallelism>$<salt>$<key>
func (ps *PasswordService) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrPasswordEmpty
	}

	if utf8.RuneCountInString(password) > MaxPasswordLength {
		return "", ErrPasswordTooLong
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, ps.params.iterations, ps.params.memory, ps.params.parallelism, keyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		ps.params.memory, ps.params.iterations, ps.params.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// ComparePassword compares a plain password with a stored hash.
// Malformed or unsupported hashes never match.
func (ps *PasswordService) ComparePassword(password, hash string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(hash, prefix) {
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
		}
	}

	params, salt, key, err := decodeArgonHash(hash)
	if err != nil {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, params.iterations, params.memory, params.parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(candidate, key) == 1
}

func decodeArgonHash(hash string) (argonParams, []byte, []byte, error) {
	var params argonParams

	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return params, nil, nil, errors.New("unsupported hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return params, nil, nil, errors.New("unsupported argon2 version")
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.iterations, &params.parallelism); err != nil {
		return params, nil, nil, fmt.Errorf("invalid argon2 parameters: %w", err)
	}
	if params.iterations == 0 || params.parallelism == 0 {
		return params, nil, nil, errors.New("invalid argon2 parameters")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, fmt.Errorf("invalid salt: %w", err)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return params, nil, nil, errors.New("invalid key")
	}

	return params, salt, key, nil
}
