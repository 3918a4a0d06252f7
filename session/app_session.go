package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound 会话不存在或已过期
var ErrNotFound = errors.New("session not found")

type AppSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAppSessionStore(rdb *redis.Client, ttl time.Duration) *AppSessionStore {
	return &AppSessionStore{rdb: rdb, ttl: ttl}
}

// AppSession 员工会话：保存转发给后端的会话凭据
type AppSession struct {
	Credential string `json:"cred"`
	IssuedAt   int64  `json:"iat"`
	ExpiresAt  int64  `json:"exp"`
}

func key(id string) string { return fmt.Sprintf("app:sess:%s", id) }

// 同一凭据的所有会话，凭据失效时一起撤销；key 里只放哈希
func credSetKey(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return fmt.Sprintf("app:cred_sessions:%s", hex.EncodeToString(sum[:]))
}

func (s *AppSessionStore) TTL() time.Duration { return s.ttl }

func (s *AppSessionStore) Create(ctx context.Context, id, credential string) error {
	now := time.Now()
	b, err := json.Marshal(AppSession{
		Credential: credential,
		IssuedAt:   now.Unix(),
		ExpiresAt:  now.Add(s.ttl).Unix(),
	})
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key(id), b, s.ttl)
	pipe.SAdd(ctx, credSetKey(credential), id)
	pipe.Expire(ctx, credSetKey(credential), s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *AppSessionStore) Get(ctx context.Context, id string) (*AppSession, error) {
	b, err := s.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var as AppSession
	if err := json.Unmarshal(b, &as); err != nil {
		return nil, err
	}
	return &as, nil
}

// Credential 只取凭据，给中间件用
func (s *AppSessionStore) Credential(ctx context.Context, id string) (string, error) {
	as, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return as.Credential, nil
}

func (s *AppSessionStore) Delete(ctx context.Context, id string) error {
	as, _ := s.Get(ctx, id) // 忽略失败
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key(id))
	if as != nil {
		pipe.SRem(ctx, credSetKey(as.Credential), id)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// RevokeCredential 后端拒绝凭据（401）时，撤销持有它的所有会话
func (s *AppSessionStore) RevokeCredential(ctx context.Context, credential string) error {
	ids, err := s.rdb.SMembers(ctx, credSetKey(credential)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	pipe := s.rdb.TxPipeline()
	for _, sid := range ids {
		pipe.Del(ctx, key(sid))
	}
	pipe.Del(ctx, credSetKey(credential))
	_, err = pipe.Exec(ctx)
	return err
}
