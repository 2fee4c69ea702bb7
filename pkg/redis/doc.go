// Package redis connects to the Redis server used by the redis session
// store driver.
//
// Connect parses a redis:// URL and pings with retries; Healthcheck wraps a
// ping as a probe func. Config fields load from the environment through
// pkg/config:
//
//	cfg, err := config.Load[redis.Config](config.WithPrefix("SOCIAL_"))
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
package redis
