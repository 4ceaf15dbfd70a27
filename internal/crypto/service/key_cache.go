package service

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/allisson/fieldcrypt/internal/crypto/domain"
)

// DerivedKeyCache memoizes dataset key pairs for the process lifetime.
//
// Derivation is a pure function of (master key, dataset salt), so concurrent
// first-use derivations of the same dataset would all produce the identical
// pair; the only cost of a race is duplicated PBKDF2 work. The cache still
// collapses concurrent misses with singleflight to avoid burning CPU on
// 100,000-iteration derivations that are guaranteed to agree, and uses
// sync.Map to guard the mapping itself against concurrent-mutation corruption.
//
// No eviction and no TTL: entries live until the process exits. This cache is
// the only component that invokes the KeyDeriver.
type DerivedKeyCache struct {
	masterKey *domain.MasterKey
	deriver   KeyDeriver

	pairs sync.Map // dataset name -> domain.KeyPair
	group singleflight.Group
}

// NewDerivedKeyCache creates a new DerivedKeyCache bound to the given master
// key and deriver. Tests instantiate isolated caches; nothing here is a
// package-level global.
func NewDerivedKeyCache(masterKey *domain.MasterKey, deriver KeyDeriver) *DerivedKeyCache {
	return &DerivedKeyCache{
		masterKey: masterKey,
		deriver:   deriver,
	}
}

// Keys returns the key pair for the dataset, deriving it on first use.
//
// A failed derivation (unregistered or malformed salt) stores no cache entry,
// so a later provisioning of the dataset's salt slot is picked up by the next
// call.
func (c *DerivedKeyCache) Keys(dataset string) (domain.KeyPair, error) {
	if cached, ok := c.pairs.Load(dataset); ok {
		return cached.(domain.KeyPair), nil
	}

	pair, err, _ := c.group.Do(dataset, func() (any, error) {
		// Re-check under singleflight: another caller may have stored the
		// pair between the Load above and this derivation.
		if cached, ok := c.pairs.Load(dataset); ok {
			return cached.(domain.KeyPair), nil
		}

		encryptionKey, err := c.deriver.DeriveDatasetKey(c.masterKey, dataset)
		if err != nil {
			return nil, err
		}

		keyPair := domain.KeyPair{
			EncryptionKey: encryptionKey,
			HashKey:       c.deriver.DeriveHashKey(encryptionKey),
		}
		c.pairs.Store(dataset, keyPair)
		return keyPair, nil
	})
	if err != nil {
		return domain.KeyPair{}, err
	}

	return pair.(domain.KeyPair), nil
}

// Len reports the number of cached dataset entries. Intended for tests.
func (c *DerivedKeyCache) Len() int {
	count := 0
	c.pairs.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}
