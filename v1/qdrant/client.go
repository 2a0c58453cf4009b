package qdrant

import (
	"context"
	"fmt"
	"sync"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding/gzip"
	"google.golang.org/grpc/keepalive"

	"github.com/Aleph-Alpha/multimodal-search/v1/logger"
	"github.com/Aleph-Alpha/multimodal-search/v1/observability"
	"github.com/Aleph-Alpha/multimodal-search/v1/vectordb"
)

const defaultPort = 6334

// QdrantClient is a vectordb.Service backed by a single long-lived Qdrant
// gRPC connection. Create it once at startup and Close it on shutdown.
type QdrantClient struct {
	api      *qdrant.Client
	cfg      *Config
	logger   logger.Logger
	observer observability.Observer
	ids      *idGenerator

	mu sync.RWMutex
	// loaded maps a collection name to the vector shapes captured by Load.
	loaded map[string]map[string]vectordb.VectorInfo
	closed bool
}

var _ vectordb.Service = (*QdrantClient)(nil)

// NewQdrantClient connects to Qdrant and verifies the connection with a
// health check.
//
// Example:
//
//	client, err := qdrant.NewQdrantClient(qdrant.QdrantParams{
//	    Config: qdrant.DefaultConfig(),
//	    Logger: log,
//	})
func NewQdrantClient(p QdrantParams) (*QdrantClient, error) {
	cfg := p.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}

	log := p.Logger
	if log == nil {
		log = logger.NewNop()
	}

	log.Info("[Qdrant] Connecting", nil, map[string]interface{}{
		"endpoint": cfg.Endpoint,
		"port":     port,
	})

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   port,
		APIKey:                 cfg.ApiKey,
		UseTLS:                 cfg.UseTLS,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
		GrpcOptions:            dialOptions(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to initialize client: %w", err)
	}

	qc := newClient(client, cfg, log, p.Observer)

	if err := qc.healthCheck(); err != nil {
		_ = client.Close()
		return nil, err
	}

	log.Info("[Qdrant] Client connected successfully", nil)
	return qc, nil
}

func newClient(api *qdrant.Client, cfg *Config, log logger.Logger, observer observability.Observer) *QdrantClient {
	return &QdrantClient{
		api:      api,
		cfg:      cfg,
		logger:   log,
		observer: observer,
		ids:      newIDGenerator(cfg.NodeID),
		loaded:   make(map[string]map[string]vectordb.VectorInfo),
	}
}

func dialOptions(cfg *Config) []grpc.DialOption {
	var opts []grpc.DialOption
	if cfg.KeepAlive {
		opts = append(opts, grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                30 * time.Second,
			Timeout:             10 * time.Second,
			PermitWithoutStream: true,
		}))
	}
	if cfg.Compression {
		opts = append(opts, grpc.WithDefaultCallOptions(grpc.UseCompressor(gzip.Name)))
	}
	return opts
}

// healthCheck verifies the server answers within ConnectTimeout.
func (c *QdrantClient) healthCheck() error {
	if c.api == nil {
		return fmt.Errorf("[Qdrant] client not initialized")
	}

	timeout := c.cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	c.logger.Info("[Qdrant] Health check passed", nil, map[string]interface{}{
		"title":    resp.GetTitle(),
		"version":  resp.GetVersion(),
		"endpoint": c.cfg.Endpoint,
	})
	return nil
}

// WithObserver sets the observer notified about every operation.
func (c *QdrantClient) WithObserver(observer observability.Observer) *QdrantClient {
	c.observer = observer
	return c
}

// Client exposes the underlying go-client for operations not covered here.
func (c *QdrantClient) Client() *qdrant.Client {
	return c.api
}

// Close releases the gRPC connection. It is safe to call more than once.
func (c *QdrantClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.loaded = make(map[string]map[string]vectordb.VectorInfo)
	if c.api == nil {
		return nil
	}
	return c.api.Close()
}

// callContext applies the per-call timeout.
func (c *QdrantClient) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg == nil || c.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.Timeout)
}

func (c *QdrantClient) ensureOpen() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return fmt.Errorf("[Qdrant] %w", vectordb.ErrClientClosed)
	}
	return nil
}

func (c *QdrantClient) loadedVectors(collection string) (map[string]vectordb.VectorInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.loaded[collection]
	return v, ok
}
