package controllers

import (
	"context"
	"time"

	"market-api/config"
)

const productListCacheKey = "products_list"

const productListCacheTTL = 5 * time.Minute

func cachedProductList(ctx context.Context) ([]byte, bool) {
	if config.RedisClient == nil {
		return nil, false
	}
	cached, err := config.RedisClient.Get(ctx, productListCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	return cached, true
}

func storeProductList(ctx context.Context, payload []byte) {
	if config.RedisClient == nil {
		return
	}
	config.RedisClient.Set(ctx, productListCacheKey, payload, productListCacheTTL)
}

// invalidateProductCache drops the cached product list. Called on every
// catalog mutation and on every cart mutation, since cart operations
// change the stock shown in listings.
func invalidateProductCache(ctx context.Context) {
	if config.RedisClient == nil {
		return
	}
	config.RedisClient.Del(ctx, productListCacheKey)
}
