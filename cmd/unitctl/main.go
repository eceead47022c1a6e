package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kevin07696/unit-client/internal/adapters/secrets"
	"github.com/kevin07696/unit-client/internal/config"
	"github.com/kevin07696/unit-client/internal/watcher"
	"github.com/kevin07696/unit-client/pkg/logging"
	"github.com/kevin07696/unit-client/pkg/models"
	"github.com/kevin07696/unit-client/pkg/observability"
	"github.com/kevin07696/unit-client/pkg/ports"
	"github.com/kevin07696/unit-client/pkg/shutdown"
	"github.com/kevin07696/unit-client/pkg/unit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func usage() {
	fmt.Println("Usage: unitctl -action=<action> [options]")
	fmt.Println("Actions:")
	fmt.Println("  get-payment       - Fetch a payment (-id, -include)")
	fmt.Println("  list-payments     - List payments (-account, -customer, -limit, -offset)")
	fmt.Println("  create-payment    - Create a payment from a JSON request document (-json, stdin by default)")
	fmt.Println("  tag-payment       - Replace a payment's tags (-id, -type, -tags k=v,k2=v2)")
	fmt.Println("  get-account       - Fetch an account (-id)")
	fmt.Println("  list-accounts     - List accounts (-customer, -limit, -offset)")
	fmt.Println("  list-transactions - List transactions (-account, -customer, -limit, -offset)")
	fmt.Println("  get-customer      - Fetch a customer (-id)")
	fmt.Println("  list-events       - List events (-type, -limit, -offset)")
	fmt.Println("  verify-webhook    - Check a webhook delivery (-json, -signature, -secret)")
	fmt.Println("  watch-events      - Poll events and print them as they arrive (-type, -interval)")
	fmt.Println("Configuration is read from UNIT_* environment variables; see internal/config.")
}

func main() {
	var (
		action    = flag.String("action", "", "Action to perform")
		id        = flag.String("id", "", "Resource id")
		accountID = flag.String("account", "", "Account id filter")
		customer  = flag.String("customer", "", "Customer id filter")
		typ       = flag.String("type", "", "Payment type for tag-payment, event types for list-events and watch-events")
		tags      = flag.String("tags", "", "Tags as key=value pairs separated by commas")
		jsonFile  = flag.String("json", "", "JSON input file, - for stdin")
		signature = flag.String("signature", "", "X-Unit-Signature header value")
		secret    = flag.String("secret", "", "Webhook token")
		limit     = flag.Int("limit", 0, "Page size")
		offset    = flag.Int("offset", 0, "Page offset")
		include   = flag.String("include", "", "Related resources to include, separated by commas")
		interval  = flag.Duration("interval", 15*time.Second, "Poll interval for watch-events")
	)
	flag.Parse()

	if *action == "" {
		usage()
		os.Exit(1)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	logger, err := logging.NewZapLoggerFromLevel(cfg.Logger.Level, cfg.Logger.Development)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to create logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	tokenSource, err := secrets.NewTokenSource(ctx, cfg, logger.Zap())
	if err != nil {
		logger.Zap().Fatal("Failed to create token source", zap.Error(err))
	}
	token, err := tokenSource.Token(ctx)
	if err != nil {
		logger.Zap().Fatal("Failed to load Unit API token", zap.Error(err))
	}

	// Metrics are only exposed by the long-running watch-events action
	var registry *prometheus.Registry
	watching := *action == "watch-events"
	if watching {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	clientCfg := unit.ClientConfig{
		Token:     token,
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.RequestTimeout(),
		RateLimit: cfg.API.RateLimit,
		RateBurst: cfg.API.RateBurst,
		Logger:    logger,
		UserAgent: cfg.API.UserAgent,
	}
	if registry != nil {
		clientCfg.MetricsRegisterer = registry
	}
	client, err := unit.NewClient(clientCfg)
	if err != nil {
		logger.Zap().Fatal("Failed to create Unit client", zap.Error(err))
	}

	if watching {
		var types []string
		if *typ != "" {
			types = strings.Split(*typ, ",")
		}
		watchEvents(client, cfg, registry, logger, types, *interval)
		return
	}

	cli := &CLI{ctx: ctx, client: client, out: os.Stdout, in: os.Stdin}
	err = cli.run(*action, Options{
		ID:        *id,
		AccountID: *accountID,
		Customer:  *customer,
		Type:      *typ,
		Tags:      *tags,
		JSONFile:  *jsonFile,
		Signature: *signature,
		Secret:    *secret,
		Limit:     *limit,
		Offset:    *offset,
		Include:   *include,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

// watchEvents prints events as they are created until SIGINT or SIGTERM. With UNIT_METRICS
// set it also serves metrics and health on METRICS_ADDR.
func watchEvents(client *unit.Client, cfg *config.Config, registry *prometheus.Registry, logger *logging.ZapLoggerAdapter, types []string, interval time.Duration) {
	cli := &CLI{ctx: context.Background(), client: client, out: os.Stdout}
	manager := shutdown.NewManager(logger.Zap(), 10*time.Second, registry)

	watchCfg := watcher.DefaultConfig()
	watchCfg.Interval = interval
	watchCfg.Types = types
	w := watcher.NewEventWatcher(client.Events, func(ctx context.Context, event models.Event) error {
		return cli.print(models.DataEnvelope{Data: event})
	}, watchCfg, observability.NewEventMetrics(registry), logger.Zap())

	if cfg.Metrics.Enabled {
		health := observability.NewHealthChecker(5 * time.Second)
		health.Register("unit_api", func(ctx context.Context) error {
			_, err := client.Events.List(ctx, models.ListParams{Limit: 1})
			return err
		})
		server := observability.StartMetricsServer(cfg.Metrics.Addr, registry, health, logger)
		manager.RegisterHTTPServer("metrics-server", server)
	}

	worker := shutdown.NewBackgroundWorker(context.Background(), "event-watcher", logger.Zap())
	worker.Start(w.Run)
	manager.Register("event-watcher", worker.Shutdown)

	logger.Info("watching events",
		ports.Bool("metrics", cfg.Metrics.Enabled),
		ports.Duration("interval", interval),
	)
	if errs := manager.WaitForShutdown(context.Background()); len(errs) > 0 {
		os.Exit(1)
	}
}
