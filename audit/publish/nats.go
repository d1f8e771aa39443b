package publish

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/nats-io/nats.go"

	"bookery/audit"
	"bookery/logging"
)

// NATSConfig configures the JetStream publisher.
type NATSConfig struct {
	URL           string
	Stream        string
	SubjectPrefix string
	Logger        logging.Logger
	Conn          *nats.Conn

	// 可选：流参数
	MaxBytes int64 // 0 表示不设置
	Replicas int   // 0 表示默认
}

// NATS publishes audit records to a NATS JetStream stream, one subject
// per entity table ("<prefix><TableName>").
type NATS struct {
	cfg      NATSConfig
	logger   logging.Logger
	conn     *nats.Conn
	js       nats.JetStreamContext
	ownsConn bool

	mu      sync.Mutex
	started bool
}

// NewNATS builds a JetStream publisher.
func NewNATS(cfg NATSConfig) *NATS {
	if cfg.Stream == "" {
		cfg.Stream = "AUDIT"
	}
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = "audit."
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.GetLogger().WithFields(logging.String("component", "publish.nats"))
	}
	return &NATS{cfg: cfg, logger: cfg.Logger}
}

// Start establishes the connection and ensures the stream exists.
func (p *NATS) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return errors.New("nats publisher already started")
	}
	if err := p.ensureConnection(); err != nil {
		return err
	}
	if err := p.ensureStream(); err != nil {
		return err
	}
	p.started = true
	return nil
}

func (p *NATS) Publish(ctx context.Context, rec *audit.Record) error {
	p.mu.Lock()
	js := p.js
	started := p.started
	p.mu.Unlock()
	if !started || js == nil {
		return errors.New("nats publisher not started")
	}
	data, err := marshalRecord(rec)
	if err != nil {
		return err
	}
	_, err = js.Publish(p.cfg.SubjectPrefix+rec.TableName, data)
	return err
}

func (p *NATS) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started = false
	if p.ownsConn && p.conn != nil {
		p.conn.Close()
	}
	p.conn = nil
	p.js = nil
	return nil
}

func (p *NATS) ensureConnection() error {
	if p.conn != nil && p.js != nil {
		return nil
	}
	if p.cfg.Conn != nil {
		p.conn = p.cfg.Conn
	} else {
		if p.cfg.URL == "" {
			p.cfg.URL = nats.DefaultURL
		}
		conn, err := nats.Connect(p.cfg.URL)
		if err != nil {
			return err
		}
		p.conn = conn
		p.ownsConn = true
	}
	js, err := p.conn.JetStream()
	if err != nil {
		return err
	}
	p.js = js
	return nil
}

func (p *NATS) ensureStream() error {
	_, err := p.js.StreamInfo(p.cfg.Stream)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) && !strings.Contains(err.Error(), "stream not found") {
		return err
	}
	sc := &nats.StreamConfig{
		Name:      p.cfg.Stream,
		Subjects:  []string{p.cfg.SubjectPrefix + ">"},
		Retention: nats.LimitsPolicy,
	}
	if p.cfg.MaxBytes > 0 {
		sc.MaxBytes = p.cfg.MaxBytes
	}
	if p.cfg.Replicas > 0 {
		sc.Replicas = p.cfg.Replicas
	}
	_, err = p.js.AddStream(sc)
	return err
}
