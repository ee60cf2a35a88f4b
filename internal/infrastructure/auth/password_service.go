package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
)

const algorithmID = "argon2id"

// PasswordServiceImpl implements domain.PasswordHasher with argon2id.
// Digests are self-contained PHC strings, so verification needs no
// out-of-band parameters.
type PasswordServiceImpl struct {
	memory      uint32
	time        uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

// NewPasswordService creates a new password hasher with fixed parameters
func NewPasswordService() domain.PasswordHasher {
	return &PasswordServiceImpl{
		memory:      64 * 1024,
		time:        1,
		parallelism: 4,
		saltLength:  16,
		keyLength:   32,
	}
}

// Hash implements domain.PasswordHasher
func (p *PasswordServiceImpl) Hash(plaintext string) (string, error) {
	salt := make([]byte, p.saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(plaintext), salt, p.time, p.memory, p.parallelism, p.keyLength)

	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID,
		argon2.Version,
		p.memory,
		p.time,
		p.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// Verify implements domain.PasswordHasher. A malformed digest verifies as
// false rather than surfacing an error to callers.
func (p *PasswordServiceImpl) Verify(digest, plaintext string) bool {
	parsed, err := parsePHC(digest)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(plaintext), parsed.salt, parsed.time, parsed.memory, parsed.parallelism, uint32(len(parsed.hash)))

	return subtle.ConstantTimeCompare(computed, parsed.hash) == 1
}

type parsedPHC struct {
	memory      uint32
	time        uint32
	parallelism uint8
	salt        []byte
	hash        []byte
}

func parsePHC(digest string) (*parsedPHC, error) {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, errors.New("invalid PHC format")
	}
	if parts[1] != algorithmID {
		return nil, errors.New("unsupported algorithm")
	}

	if !strings.HasPrefix(parts[2], "v=") {
		return nil, errors.New("missing argon2 version")
	}
	version, err := strconv.Atoi(strings.TrimPrefix(parts[2], "v="))
	if err != nil || version != argon2.Version {
		return nil, errors.New("unsupported argon2 version")
	}

	var out parsedPHC
	var mem, tm, par uint64
	for _, pair := range strings.Split(parts[3], ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return nil, errors.New("invalid parameter entry")
		}
		switch kv[0] {
		case "m":
			mem, err = strconv.ParseUint(kv[1], 10, 32)
		case "t":
			tm, err = strconv.ParseUint(kv[1], 10, 32)
		case "p":
			par, err = strconv.ParseUint(kv[1], 10, 8)
		default:
			return nil, errors.New("unsupported parameter")
		}
		if err != nil {
			return nil, errors.New("invalid parameter value")
		}
	}
	if mem == 0 || tm == 0 || par == 0 {
		return nil, errors.New("missing parameters")
	}
	out.memory = uint32(mem)
	out.time = uint32(tm)
	out.parallelism = uint8(par)

	out.salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(out.salt) == 0 {
		return nil, errors.New("invalid salt encoding")
	}

	out.hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(out.hash) == 0 {
		return nil, errors.New("invalid hash encoding")
	}

	return &out, nil
}
