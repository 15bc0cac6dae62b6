package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Iron-Ham/groundcrew/internal/app"
	"github.com/Iron-Ham/groundcrew/internal/config"
	"github.com/Iron-Ham/groundcrew/internal/event"
	"github.com/Iron-Ham/groundcrew/internal/events"
	"github.com/Iron-Ham/groundcrew/internal/metrics"
	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the event hub until interrupted",
	Long: `Run the event hub until interrupted with SIGINT or SIGTERM.

While running, edits to the config file are picked up immediately: the
logging preset, categories and level can be changed without a restart.
When metrics.enabled is set, Prometheus metrics are served on
metrics.address at /metrics.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveHeartbeat time.Duration
	serveDuration  time.Duration
)

// serviceName identifies groundcrew itself in heartbeat events
const serviceName = "groundcrew"

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().DurationVar(&serveHeartbeat, "heartbeat", 30*time.Second, "Interval between heartbeat events")
	serveCmd.Flags().DurationVar(&serveDuration, "duration", 0, "Stop after this long (0 runs until interrupted)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveHeartbeat <= 0 {
		return fmt.Errorf("--heartbeat must be positive")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := app.New(cfg, app.WithOutput(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.LogEvents(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if serveDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, serveDuration)
		defer cancel()
	}

	if viper.ConfigFileUsed() != "" {
		config.Watch(func(next *config.Config, err error) {
			if err != nil {
				a.Logger.Warn("config reload rejected", "error", err)
				return
			}
			if err := a.ApplyConfig(next); err != nil {
				a.Logger.Warn("config reload rejected", "error", err)
			}
		})
	}

	var wg conc.WaitGroup
	if a.Metrics != nil {
		addr := cfg.Metrics.Address
		wg.Go(func() {
			if err := metrics.Serve(ctx, addr, metrics.NewRouter(a.Metrics)); err != nil {
				a.Logger.Error("metrics server failed", "address", addr, "error", err)
				stop()
			}
		})
		a.Logger.Info("metrics server listening", "address", addr)
	}

	publishHeartbeat(a, events.ServiceActive)
	ticker := time.NewTicker(serveHeartbeat)
	defer ticker.Stop()

	for running := true; running; {
		select {
		case <-ticker.C:
			publishHeartbeat(a, events.ServiceActive)
		case <-ctx.Done():
			running = false
		}
	}

	publishHeartbeat(a, events.ServiceCompleted)
	wg.Wait()
	return nil
}

func publishHeartbeat(a *app.App, status events.ServiceStatus) {
	if err := event.Publish(a.Events, events.NewServiceStatusChanged(serviceName, status)); err != nil {
		a.Logger.Warn("heartbeat delivery failed", "error", err)
	}
}
