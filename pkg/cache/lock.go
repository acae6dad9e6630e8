package cache

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrLockHeld is returned by TryLock when another holder owns the key.
var ErrLockHeld = errors.New("cache: lock already held")

// localLocks backs TryLock when Redis is unavailable (tests, dev without
// Redis). Single-process only, which is exactly the scope tests need.
var (
	localMu    sync.Mutex
	localLocks = map[string]string{}
)

// Lock is a held distributed lock. Release it with Unlock.
type Lock struct {
	key   string
	token string
}

// TryLock acquires key for at most ttl without blocking. Returns
// ErrLockHeld when someone else holds it. Backed by Redis SET NX when
// connected, by an in-process table otherwise.
func TryLock(key string, ttl time.Duration) (*Lock, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	token := hex.EncodeToString(buf)

	if RDB == nil {
		localMu.Lock()
		defer localMu.Unlock()
		if _, held := localLocks[key]; held {
			return nil, ErrLockHeld
		}
		localLocks[key] = token
		return &Lock{key: key, token: token}, nil
	}

	ok, err := RDB.SetNX(Ctx, key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLockHeld
	}
	return &Lock{key: key, token: token}, nil
}

// unlockScript deletes the key only if we still own it, so a lock that
// expired and was re-acquired by someone else is never released by us.
var unlockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Unlock releases the lock. Safe to call on an expired lock.
func (l *Lock) Unlock() {
	if l == nil {
		return
	}

	if RDB == nil {
		localMu.Lock()
		defer localMu.Unlock()
		if localLocks[l.key] == l.token {
			delete(localLocks, l.key)
		}
		return
	}

	_ = unlockScript.Run(Ctx, RDB, []string{l.key}, l.token).Err()
}
