// Package arbiter hosts the authoritative command dispatch service: a gRPC
// server that accepts raw command frames, validates and applies them against
// the game world, and journals every executed command for replay.
package arbiter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/net/netutil"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/louisbranch/signalyard/internal/commandlog"
	"github.com/louisbranch/signalyard/internal/sim"
)

// Config assembles one arbiter server.
type Config struct {
	// Addr is the TCP listen address, e.g. ":8095".
	Addr string
	// WorldSide is the map edge length of the hosted world.
	WorldSide uint32
	// JournalPath is the SQLite journal location; empty disables journaling.
	JournalPath string
	// PolicyPath is a Lua policy script; empty disables the policy hook.
	PolicyPath string
	// MaxConns caps concurrent TCP connections; zero means unlimited.
	MaxConns int
	// Grant configures join grant verification; zero disables auth.
	Grant GrantConfig
	// Locale renders transport error messages.
	Locale string
}

// Server hosts the dispatch gRPC API and owns its world and journal.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	journal    *commandlog.Store
}

// NewServer creates a configured arbiter server listening on cfg.Addr.
func NewServer(cfg Config) (*Server, error) {
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}
	if cfg.MaxConns > 0 {
		listener = netutil.LimitListener(listener, cfg.MaxConns)
	}

	side := cfg.WorldSide
	if side == 0 {
		side = 256
	}
	world := sim.NewWorld(side)
	table := sim.NewTable()

	opts := []ServiceOption{}
	var journal *commandlog.Store
	if cfg.JournalPath != "" {
		journal, err = openJournal(cfg.JournalPath)
		if err != nil {
			_ = listener.Close()
			return nil, err
		}
		opts = append(opts, WithJournal(journal))
	}
	if cfg.PolicyPath != "" {
		policy, err := LoadPolicyFile(cfg.PolicyPath)
		if err != nil {
			_ = listener.Close()
			closeJournal(journal)
			return nil, err
		}
		opts = append(opts, WithPolicy(policy))
	}
	if cfg.Locale != "" {
		opts = append(opts, WithLocale(cfg.Locale))
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(UnaryAuthInterceptor(cfg.Grant)),
	)
	service := NewService(world, table, opts...)
	healthServer := health.NewServer()
	grpcServer.RegisterService(&DispatchServiceDesc, service)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		journal:    journal,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves an arbiter until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	server, err := NewServer(cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("arbiter listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		if s.health != nil {
			s.health.Shutdown()
		}
		s.grpcServer.GracefulStop()
		err := <-serveErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
}

// Close releases arbiter resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	closeJournal(s.journal)
}

func openJournal(path string) (*commandlog.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}
	journal, err := commandlog.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open command journal: %w", err)
	}
	return journal, nil
}

func closeJournal(journal *commandlog.Store) {
	if journal == nil {
		return
	}
	if err := journal.Close(); err != nil {
		log.Printf("close command journal: %v", err)
	}
}
