package menucache

import (
	"context"
	"fmt"

	"carte-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// Store est le port de cache des bundles de menu. Le port stocke valeur et
// horodatage ; la politique de péremption (TTL) appartient à l'appelant.
type Store interface {
	Get(ctx context.Context, restaurantID uint) (*Snapshot, error)
	Set(ctx context.Context, restaurantID uint, snap *Snapshot) error
	// Invalidate vide le cache du tenant en bloc et publie une notification
	// sans payload sur le canal de changement.
	Invalidate(ctx context.Context, restaurantID uint) error
	// Subscribe délivre un signal par notification de changement du tenant.
	Subscribe(ctx context.Context, restaurantID uint) (<-chan struct{}, func(), error)
}

type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: "menu:bundle:",
	}
}

func (s *RedisStore) key(restaurantID uint) string {
	return fmt.Sprintf("%s%d", s.keyPrefix, restaurantID)
}

func (s *RedisStore) channel(restaurantID uint) string {
	return fmt.Sprintf("menu:changed:%d", restaurantID)
}

// Get renvoie (nil, nil) quand rien n'est en cache.
func (s *RedisStore) Get(ctx context.Context, restaurantID uint) (*Snapshot, error) {
	raw, err := s.client.Get(ctx, s.key(restaurantID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lecture du cache menu impossible : %w", err)
	}

	snap, err := DecodeSnapshot(raw)
	if err != nil {
		// entrée corrompue : on la jette, l'appelant rechargera
		_ = s.client.Del(ctx, s.key(restaurantID)).Err()
		return nil, nil
	}
	return snap, nil
}

func (s *RedisStore) Set(ctx context.Context, restaurantID uint, snap *Snapshot) error {
	raw, err := EncodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("encodage du cache menu impossible : %w", err)
	}
	// pas de TTL côté Redis : la péremption est jugée par l'appelant
	if err := s.client.Set(ctx, s.key(restaurantID), raw, 0).Err(); err != nil {
		return fmt.Errorf("écriture du cache menu impossible : %w", err)
	}
	return nil
}

func (s *RedisStore) Invalidate(ctx context.Context, restaurantID uint) error {
	if err := s.client.Del(ctx, s.key(restaurantID)).Err(); err != nil {
		return fmt.Errorf("invalidation du cache menu impossible : %w", err)
	}
	// notification sans payload : le consommateur doit recharger
	return s.client.Publish(ctx, s.channel(restaurantID), "").Err()
}

func (s *RedisStore) Subscribe(ctx context.Context, restaurantID uint) (<-chan struct{}, func(), error) {
	pubsub := s.client.Subscribe(ctx, s.channel(restaurantID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("abonnement au canal de changement impossible : %w", err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		for range pubsub.Channel() {
			select {
			case out <- struct{}{}:
			default: // signal déjà en attente
			}
		}
	}()

	cancel := func() { _ = pubsub.Close() }
	return out, cancel, nil
}

var _ Store = (*RedisStore)(nil)
