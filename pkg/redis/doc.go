// Package redis connects to the Redis server that holds session records.
//
// Connect parses REDIS_URL, pings with retries and returns a
// redis.UniversalClient ready to be handed to redisstore.New.
// Healthcheck wraps PING for readiness probes.
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	client, err := redis.Connect(ctx, cfg, log)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Errors are sentinels joined with the driver error, so errors.Is works for both.
package redis
