package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	aelfgrpc "github.com/blockberries/aelf/grpc"
	"github.com/blockberries/aelf/server"
)

var (
	listenFlag = cli.StringFlag{
		Name:    "listen",
		Usage:   "gRPC listen address",
		EnvVars: []string{"AELFID_LISTEN"},
		Value:   "127.0.0.1:7900",
	}
	metricsListenFlag = cli.StringFlag{
		Name:    "metrics-listen",
		Usage:   "Prometheus metrics listen address, empty to disable",
		EnvVars: []string{"AELFID_METRICS_LISTEN"},
		Value:   "127.0.0.1:9464",
	}
	logLevelFlag = cli.StringFlag{
		Name:    "log-level",
		Usage:   "log level (debug, info, warn, error)",
		EnvVars: []string{"AELFID_LOG_LEVEL"},
		Value:   "info",
	}
	logFormatFlag = cli.StringFlag{
		Name:    "log-format",
		Usage:   "log format (json or console)",
		EnvVars: []string{"AELFID_LOG_FORMAT"},
		Value:   "json",
	}
)

var Serve = cli.Command{
	Action: serve,
	Name:   "serve",
	Usage:  "serves the aelf service over gRPC until interrupted",
	Flags: []cli.Flag{
		&listenFlag,
		&metricsListenFlag,
		&logLevelFlag,
		&logFormatFlag,
	},
}

const shutdownTimeout = 5 * time.Second

func serve(c *cli.Context) error {
	log, err := newLogger(c.String(logLevelFlag.Name), c.String(logFormatFlag.Name))
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	srv, err := server.New(server.WithLogger(log), server.WithRegisterer(reg))
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", c.String(listenFlag.Name))
	if err != nil {
		srv.Close()
		return fmt.Errorf("listen: %w", err)
	}
	gs := grpc.NewServer()
	aelfgrpc.NewGRPCServer(srv).Register(gs)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("serving gRPC", zap.Stringer("addr", lis.Addr()))
		if err := gs.Serve(lis); !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})

	var metricsSrv *http.Server
	if addr := c.String(metricsListenFlag.Name); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		metricsSrv = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: shutdownTimeout}
		g.Go(func() error {
			log.Info("serving metrics", zap.String("addr", addr))
			if err := metricsSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		gs.GracefulStop()
		var err error
		if metricsSrv != nil {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			err = metricsSrv.Shutdown(sctx)
			cancel()
		}
		return errors.Join(err, srv.Close())
	})

	return g.Wait()
}

// newLogger builds a production zap logger at the given level. The
// console format is meant for terminals.
func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	var cfg zap.Config
	switch format {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
