package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

const (
	itemKeyPrefix = "item:"

	fieldName      = "name"
	fieldStock     = "stock"
	fieldImageName = "image_name"
	fieldCreatedBy = "created_by"
)

// RedisAdapter keeps each item as a hash under item:{id}.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func itemKey(itemID string) string {
	return itemKeyPrefix + itemID
}

func (r *RedisAdapter) PutItem(ctx context.Context, item domain.Item) error {
	key := itemKey(item.ID)

	// DEL + HSET in one MULTI so a put replaces the whole record.
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			fieldName, item.Name,
			fieldStock, item.Stock,
			fieldImageName, item.ImageName,
			fieldCreatedBy, item.CreatedBy,
		)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: put item %s: %v", domain.ErrStoreUnavailable, item.ID, err)
	}
	return nil
}

func (r *RedisAdapter) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	fields, err := r.client.HGetAll(ctx, itemKey(itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: get item %s: %v", domain.ErrStoreUnavailable, itemID, err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrNotFound
	}

	stockField, ok := fields[fieldStock]
	if !ok {
		// A hash without a stock field is not a sellable item.
		return nil, domain.ErrNotFound
	}
	stock, err := strconv.Atoi(stockField)
	if err != nil {
		return nil, fmt.Errorf("%w: item %s has malformed stock %q", domain.ErrStoreUnavailable, itemID, stockField)
	}

	return &domain.Item{
		ID:        itemID,
		Name:      fields[fieldName],
		Stock:     stock,
		ImageName: fields[fieldImageName],
		CreatedBy: fields[fieldCreatedBy],
	}, nil
}

// DecrementStock is a plain HINCRBY: no existence or floor check, so
// concurrent runs may push stock below zero.
func (r *RedisAdapter) DecrementStock(ctx context.Context, itemID string, quantity int) error {
	err := r.client.HIncrBy(ctx, itemKey(itemID), fieldStock, -int64(quantity)).Err()
	if err != nil {
		return fmt.Errorf("%w: decrement stock of %s: %v", domain.ErrStoreUnavailable, itemID, err)
	}
	return nil
}

// Stock returns the raw stock counter, mainly for tooling and tests.
func (r *RedisAdapter) Stock(ctx context.Context, itemID string) (int, error) {
	stock, err := r.client.HGet(ctx, itemKey(itemID), fieldStock).Int()
	if errors.Is(err, redis.Nil) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: read stock of %s: %v", domain.ErrStoreUnavailable, itemID, err)
	}
	return stock, nil
}
