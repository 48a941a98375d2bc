package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/cliniqa/clinic-attendance/internal/models"
)

// TokenCache is a read-through cache of the currently valid QR token per
// (clinic, branch) scope. It only ever shortens a DB round trip; every
// write path invalidates, and a nil cache disables caching entirely.
type TokenCache struct {
	rdb *redis.Client
}

// New returns nil when addr is empty, which all methods tolerate.
func New(addr string) *TokenCache {
	if addr == "" {
		return nil
	}
	return &TokenCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func tokenKey(clinicID, branchID uint) string {
	return fmt.Sprintf("qrtoken:%d:%d", clinicID, branchID)
}

func (c *TokenCache) GetToken(ctx context.Context, clinicID, branchID uint) *models.QRToken {
	if c == nil {
		return nil
	}

	b, err := c.rdb.Get(ctx, tokenKey(clinicID, branchID)).Bytes()
	if err != nil {
		return nil
	}

	var tok models.QRToken
	if err := json.Unmarshal(b, &tok); err != nil {
		return nil
	}
	return &tok
}

// SetToken caches tok until its window closes.
func (c *TokenCache) SetToken(ctx context.Context, tok *models.QRToken) {
	if c == nil || tok == nil {
		return
	}

	ttl := time.Until(tok.ValidUntil)
	if ttl <= 0 {
		return
	}

	b, err := json.Marshal(tok)
	if err != nil {
		return
	}

	// Cache failures are invisible; the DB stays the source of truth.
	c.rdb.Set(ctx, tokenKey(tok.ClinicID, tok.BranchID), b, ttl)
}

func (c *TokenCache) Invalidate(ctx context.Context, clinicID, branchID uint) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, tokenKey(clinicID, branchID))
}
