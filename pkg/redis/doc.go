// Package redis connects to Redis with go-redis/v9 and offers a small typed
// JSON document store on top of it.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	profiles := redis.NewJSONStore[settings.Settings](client, cfg.KeyPrefix+"settings:", 0)
//
// Healthcheck plugs the client into a readiness probe.
package redis
