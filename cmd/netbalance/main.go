package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"

	"github.com/Fantasim/netbalance/internal/api"
	"github.com/Fantasim/netbalance/internal/balance"
	"github.com/Fantasim/netbalance/internal/chain"
	"github.com/Fantasim/netbalance/internal/config"
	"github.com/Fantasim/netbalance/internal/logging"
	"github.com/Fantasim/netbalance/internal/network"
	"github.com/Fantasim/netbalance/web"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	case "check":
		if err := runCheck(os.Args[2:]); err != nil {
			os.Exit(1)
		}
	case "networks":
		if err := runNetworks(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "networks: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("netbalance %s\n", version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: netbalance <command>

Commands:
  serve                              Start the balance checker page on 127.0.0.1
  check [-network <id>] <address>    Look up one native balance from the terminal
  networks [-probe]                  List the supported networks, optionally probing each endpoint
  version                            Print version information
`)
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCloser, err := logging.Setup(logging.Options{Level: cfg.LogLevel, Dir: cfg.LogDir, Console: true})
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logCloser.Close()

	slog.Info("starting netbalance",
		"version", version,
		"port", cfg.Port,
		"defaultNetwork", cfg.DefaultNetwork,
		"rpcRateLimit", cfg.RPCRateLimit,
		"logLevel", cfg.LogLevel,
	)

	registry := network.DefaultRegistry()
	initial, err := registry.Parse(cfg.DefaultNetwork)
	if err != nil {
		return fmt.Errorf("%w: NETBALANCE_DEFAULT_NETWORK: %w", config.ErrInvalidConfig, err)
	}

	view := balance.NewView()
	session, err := balance.NewSession(context.Background(), registry, chain.NewDialer(cfg.RPCRateLimit), view, initial)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	slog.Info("balance session ready", "network", session.Active().ID)

	// Non-blocking: failing endpoints only produce warnings.
	go chain.CheckEndpoints(context.Background(), registry.All())

	// Strip the "build/" prefix from the embed FS.
	staticFS, err := fs.Sub(web.StaticFiles, "build")
	if err != nil {
		return fmt.Errorf("failed to access embedded static files: %w", err)
	}

	api.Version = version
	router := api.NewRouter(session, view, staticFS)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	srv := &http.Server{
		Addr:           addr,
		Handler:        router,
		ReadTimeout:    config.ServerReadTimeout,
		WriteTimeout:   config.ServerWriteTimeout,
		IdleTimeout:    config.ServerIdleTimeout,
		MaxHeaderBytes: config.ServerMaxHeaderBytes,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr, "url", "http://"+addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	select {
	case <-done:
	case err := <-listenErr:
		return fmt.Errorf("server listen error: %w", err)
	}

	slog.Info("initiating graceful shutdown", "timeout", config.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

func runCheck(args []string) error {
	flags := flag.NewFlagSet("check", flag.ExitOnError)
	networkFlag := flags.String("network", "", "Network id: ethereum, polygon, base or sepolia (default: from NETBALANCE_DEFAULT_NETWORK)")
	flags.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return err
	}

	// The terminal belongs to the renderer; records go to the log file only.
	logCloser, err := logging.Setup(logging.Options{Level: cfg.LogLevel, Dir: cfg.LogDir})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup logging: %v\n", err)
		return err
	}
	defer logCloser.Close()

	selected := cfg.DefaultNetwork
	if *networkFlag != "" {
		selected = *networkFlag
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = checkBalance(ctx, network.DefaultRegistry(), chain.NewDialer(cfg.RPCRateLimit), &terminalRenderer{}, selected, flags.Arg(0))
	return err
}

// checkBalance runs one query against the named network. Query failures are
// already drawn by render; only setup failures are printed here.
func checkBalance(ctx context.Context, registry *network.Registry, dial chain.Dialer, render balance.Renderer, networkName, address string) (*balance.QueryResult, error) {
	id, err := registry.Parse(networkName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return nil, err
	}

	session, err := balance.NewSession(ctx, registry, dial, render, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return nil, err
	}

	return session.Query(ctx, address)
}

func runNetworks(args []string) error {
	flags := flag.NewFlagSet("networks", flag.ExitOnError)
	probe := flags.Bool("probe", false, "Ask each endpoint for its chain id")
	flags.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	registry := network.DefaultRegistry()
	active, err := registry.Parse(cfg.DefaultNetwork)
	if err != nil {
		active = registry.Default().ID
	}

	var health []chain.HealthCheckResult
	if *probe {
		logCloser, err := logging.Setup(logging.Options{Level: cfg.LogLevel, Dir: cfg.LogDir})
		if err != nil {
			return err
		}
		defer logCloser.Close()

		spinner, _ := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start("Probing endpoints...")
		health = chain.CheckEndpoints(context.Background(), registry.All())
		if spinner != nil {
			_ = spinner.Stop()
		}
	}

	return renderNetworks(registry, active, health)
}
