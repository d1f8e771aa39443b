package publish

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"bookery/audit"
	"bookery/logging"
)

// redisClient captures the subset of go-redis commands we rely on (for easier testing).
type redisClient interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	Close() error
}

// RedisConfig describes how the Redis Streams publisher should connect/behave.
type RedisConfig struct {
	Client       redis.UniversalClient
	Addr         string
	Username     string
	Password     string
	DB           int
	StreamPrefix string
	MaxLen       int64 // 流长度上限（近似裁剪），0 表示不限制
	Logger       logging.Logger
}

// Redis publishes audit records to Redis Streams, one stream per entity
// table ("<prefix><TableName>").
type Redis struct {
	cfg       RedisConfig
	client    redisClient
	ownClient bool
	logger    logging.Logger
}

// NewRedis constructs a Redis Streams publisher.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	if cfg.StreamPrefix == "" {
		cfg.StreamPrefix = "audit:"
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.GetLogger().WithFields(logging.String("component", "publish.redis"))
	}

	var cl redisClient
	var own bool
	if cfg.Client != nil {
		cl = cfg.Client
	} else if cfg.Addr != "" {
		options := &redis.Options{Addr: cfg.Addr, Username: cfg.Username, Password: cfg.Password, DB: cfg.DB}
		cl = redis.NewClient(options)
		own = true
	}
	if cl == nil {
		return nil, errors.New("redis client not configured")
	}

	return &Redis{cfg: cfg, client: cl, ownClient: own, logger: cfg.Logger}, nil
}

func (p *Redis) Publish(ctx context.Context, rec *audit.Record) error {
	data, err := marshalRecord(rec)
	if err != nil {
		return err
	}
	args := &redis.XAddArgs{
		Stream: p.cfg.StreamPrefix + rec.TableName,
		Values: map[string]any{
			"record":    string(data),
			"action":    rec.Action.String(),
			"eventTime": rec.EventTime.Format(time.RFC3339Nano),
		},
	}
	if p.cfg.MaxLen > 0 {
		args.MaxLen = p.cfg.MaxLen
		args.Approx = true
	}
	return p.client.XAdd(ctx, args).Err()
}

func (p *Redis) Close() error {
	if p.ownClient {
		return p.client.Close()
	}
	return nil
}
