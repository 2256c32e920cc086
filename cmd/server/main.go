// Command server boots an address-space traversal server: it loads
// configuration, seeds a standard-namespace node store, wires the
// Browse/BrowseNext/TranslateBrowsePathsToNodeIds service, and exposes
// the administrative gRPC surface over a TCP listener.
package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"addrspaced/internal/addrspace"
	"addrspaced/internal/config"
	"addrspaced/internal/logger"
	zapadapter "addrspaced/internal/logger/zap"
	"addrspaced/internal/nodestore"
	"addrspaced/internal/telemetry"
	"addrspaced/internal/transport"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.ValidateConfig(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zl, err := zapadapter.New(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()
	lgr := zapadapter.NewZapAdapter(zl)
	cfg.LogConfig(lgr)

	shutdownTracer := telemetry.InitTracer(cfg.Telemetry, "addrspace-server")
	defer shutdownTracer(context.Background())

	store := nodestore.NewStandardNamespace(lgr)
	sessions := addrspace.NewSessionManager(cfg.Server.ContinuationPointCap, lgr)
	svc := addrspace.NewService(store, sessions,
		addrspace.WithLogger(lgr),
		addrspace.WithMaxNodesPerBrowse(cfg.Server.MaxNodesPerBrowse),
		addrspace.WithMaxReferencesPerNode(cfg.Server.MaxReferencesPerNode),
		addrspace.WithMaxNodesPerTranslateBrowsePaths(cfg.Server.MaxNodesPerTranslateBrowsePathsToNodeIds),
		addrspace.WithMaxNodesPerRegisterNodes(cfg.Server.MaxNodesPerRegisterNodes),
	)

	// Startup smoke check: browse the root folder once to confirm the
	// store and service are wired before accepting connections.
	rootBrowse := svc.BrowseOne(context.Background(), addrspace.BrowseDescription{
		NodeId:     nodestore.RootFolder(),
		Direction:  addrspace.BrowseForward,
		ResultMask: addrspace.ResultMaskAll,
	}, 0)
	lgr.Info("startup browse check",
		logger.F("status", string(rootBrowse.StatusCode)),
		logger.F("references", len(rootBrowse.References)),
	)

	lis, err := net.Listen("tcp", cfg.Transport.Bind)
	if err != nil {
		log.Fatalf("failed to listen on %s: %v", cfg.Transport.Bind, err)
	}

	srv := transport.New(lis, sessions, cfg.Telemetry.Tracing.Enabled, transport.WithLogger(lgr))

	go func() {
		lgr.Info("server listening", logger.F("bind", cfg.Transport.Bind))
		if err := srv.Start(); err != nil {
			lgr.Error("server stopped", logger.F("error", err.Error()))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	lgr.Info("shutting down")
	srv.GracefulStop()
}
