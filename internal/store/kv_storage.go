package store

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

var ErrResetUnsupported = errors.New("reset is not supported on a prefixed storage")

// PrefixedStorage namespaces a shared fiber.Storage so sessions and other
// consumers can live in the same backend.
type PrefixedStorage struct {
	fiber.Storage
	keyPrefix string
}

func (s *PrefixedStorage) Get(key string) ([]byte, error) {
	return s.Storage.Get(s.keyPrefix + key)
}

func (s *PrefixedStorage) Set(key string, val []byte, exp time.Duration) error {
	return s.Storage.Set(s.keyPrefix+key, val, exp)
}

func (s *PrefixedStorage) Delete(key string) error {
	return s.Storage.Delete(s.keyPrefix + key)
}

// Reset would wipe every namespace of the shared backend.
func (s *PrefixedStorage) Reset() error {
	return ErrResetUnsupported
}

func NewPrefixedStorage(storage fiber.Storage, keyPrefix string) fiber.Storage {
	return &PrefixedStorage{
		Storage:   storage,
		keyPrefix: keyPrefix,
	}
}
