// Package redis implementa el almacenamiento clave-valor sobre Redis (go-redis/v9).
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/listcalc/internal/domain/repository"
)

var _ repository.SlotStore = (*SlotStore)(nil)

// SlotStore guarda cada slot como un string de Redis bajo prefix+key.
type SlotStore struct {
	client goredis.UniversalClient
	prefix string
}

// Open parsea la URL, configura el pool y verifica conectividad con Ping.
func Open(ctx context.Context, url, prefix string) (*SlotStore, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = 4
	opts.MinIdleConns = 1
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewSlotStore(client, prefix), nil
}

// NewSlotStore envuelve un cliente ya configurado.
func NewSlotStore(client goredis.UniversalClient, prefix string) *SlotStore {
	return &SlotStore{client: client, prefix: prefix}
}

func (s *SlotStore) key(k string) string { return s.prefix + k }

// Get devuelve false sin error si la clave no existe (redis.Nil).
func (s *SlotStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return v, true, nil
}

// Put sobrescribe la clave sin expiración.
func (s *SlotStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete elimina la clave.
func (s *SlotStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close cierra el pool de conexiones.
func (s *SlotStore) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}
