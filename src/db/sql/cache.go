package db

import (
	"log"
	"time"

	"github.com/dgraph-io/ristretto"

	"spendbook-server/src/models"
)

// The auth middleware resolves the token subject to a user on every
// request, so user rows are by far the hottest lookup. Rows are never
// updated after registration; the TTL only bounds memory, not staleness.
const userCacheTTL = 5 * time.Minute

var userCache *ristretto.Cache

func InitCache() {
	var err error
	userCache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

func cachedUser(email string) (*models.User, bool) {
	if userCache == nil {
		return nil, false
	}
	v, ok := userCache.Get(email)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func cacheUser(user *models.User) {
	if userCache == nil {
		return
	}
	userCache.SetWithTTL(user.Email, user, 1, userCacheTTL)
}
