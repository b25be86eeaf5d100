package server

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/blockberries/aelf"
	"github.com/blockberries/aelf/trace"
	"github.com/blockberries/aelf/types"
)

// Compile-time interface check.
var _ aelf.Service = (*Server)(nil)

// Server runs the identifier codec and the trace aggregator behind
// the aelf.Service interface. Transports (local, gRPC) interact with
// the core exclusively through this server.
//
// The core functions are pure; Server adds lifecycle enforcement,
// context checks, logging and metrics. It is safe for concurrent use.
type Server struct {
	guard   *LifecycleGuard
	log     *zap.Logger
	metrics *metrics
}

// Option configures a Server.
type Option func(*config)

type config struct {
	log        *zap.Logger
	registerer prometheus.Registerer
}

// WithLogger sets the logger. The default, also used for a nil
// logger, discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRegisterer registers the server's metrics with r. Without it
// the metrics are still maintained but not exported.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(c *config) { c.registerer = r }
}

// New creates a new Server.
func New(opts ...Option) (*Server, error) {
	cfg := config{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := newMetrics()
	if cfg.registerer != nil {
		if err := m.register(cfg.registerer); err != nil {
			return nil, fmt.Errorf("aelf server: register metrics: %w", err)
		}
	}
	return &Server{
		guard:   NewLifecycleGuard(),
		log:     cfg.log,
		metrics: m,
	}, nil
}

// enter admits a call, failing if the server is closed or ctx is done.
func (s *Server) enter(ctx context.Context, method string) error {
	if err := s.guard.Enter(method); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		s.guard.Leave()
		return err
	}
	return nil
}

// DecodeAddress parses a base58check address.
func (s *Server) DecodeAddress(ctx context.Context, text string) (types.Address, error) {
	if err := s.enter(ctx, "DecodeAddress"); err != nil {
		return types.Address{}, err
	}
	defer s.guard.Leave()

	addr, err := types.AddressFromBase58(text)
	s.metrics.observeDecode("address", err)
	if err != nil {
		s.log.Debug("address decode failed", zap.String("input", text), zap.Error(err))
		return types.Address{}, err
	}
	return addr, nil
}

// EncodeAddress renders an address as base58check.
func (s *Server) EncodeAddress(ctx context.Context, addr types.Address) (string, error) {
	if err := s.enter(ctx, "EncodeAddress"); err != nil {
		return "", err
	}
	defer s.guard.Leave()

	if len(addr.Value) != types.IdentifierLength {
		s.log.Warn("encoding address of unexpected length", zap.Int("length", len(addr.Value)))
	}
	return addr.Base58(), nil
}

// DecodeHash parses a hex hash.
func (s *Server) DecodeHash(ctx context.Context, text string) (types.Hash, error) {
	if err := s.enter(ctx, "DecodeHash"); err != nil {
		return types.Hash{}, err
	}
	defer s.guard.Leave()

	h, err := types.HashFromHex(text)
	s.metrics.observeDecode("hash", err)
	if err != nil {
		s.log.Debug("hash decode failed", zap.String("input", text), zap.Error(err))
		return types.Hash{}, err
	}
	return h, nil
}

// EncodeHash renders a hash as lowercase hex.
func (s *Server) EncodeHash(ctx context.Context, h types.Hash) (string, error) {
	if err := s.enter(ctx, "EncodeHash"); err != nil {
		return "", err
	}
	defer s.guard.Leave()

	if len(h.Value) != types.IdentifierLength {
		s.log.Warn("encoding hash of unexpected length", zap.Int("length", len(h.Value)))
	}
	return h.Hex(), nil
}

// AnalyzeTrace rebuilds the trace tree and aggregates it.
func (s *Server) AnalyzeTrace(ctx context.Context, arena types.TraceArena) (types.TraceSummary, error) {
	if err := s.enter(ctx, "AnalyzeTrace"); err != nil {
		return types.TraceSummary{}, err
	}
	defer s.guard.Leave()

	root, err := arena.Tree()
	if err != nil {
		s.metrics.traces.WithLabelValues("malformed").Inc()
		s.log.Warn("rejecting malformed trace", zap.Int("nodes", len(arena.Nodes)), zap.Error(err))
		return types.TraceSummary{}, err
	}

	summary := trace.Summarize(root)
	result := "failed"
	if summary.Successful {
		result = "successful"
	}
	s.metrics.traces.WithLabelValues(result).Inc()
	s.metrics.validStateSets.Observe(float64(len(summary.ValidStateChanges)))

	s.log.Debug("trace analyzed",
		zap.Stringer("tx", root.TransactionId),
		zap.Stringer("status", root.ExecutionStatus),
		zap.Bool("successful", summary.Successful),
		zap.Int("state_sets", len(summary.StateChanges)),
		zap.Int("valid_state_sets", len(summary.ValidStateChanges)),
	)
	return summary, nil
}

// Close stops accepting calls and waits for in-flight ones.
func (s *Server) Close() error {
	if s.guard.Close() {
		s.log.Info("server closed")
	}
	return nil
}
