package cmd

import (
	"fmt"
	"sync/atomic"

	"github.com/Iron-Ham/groundcrew/internal/app"
	"github.com/Iron-Ham/groundcrew/internal/event"
	"github.com/Iron-Ham/groundcrew/internal/events"
	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"
)

var emitCmd = &cobra.Command{
	Use:   "emit",
	Short: "Publish synthetic ground-handling events",
	Long: `Publish a stream of synthetic connection, flight phase and ground
service events from concurrent producers. Every event is logged through
the configured logging filter, which makes emit a quick way to try presets.

Examples:
  # Default load from the config file
  groundcrew emit

  # Only show boarding-related messages
  GROUNDCREW_LOGGING_PRESET=boarding groundcrew emit -p 2 -n 20`,
	Args: cobra.NoArgs,
	RunE: runEmit,
}

var (
	emitProducers int
	emitEvents    int
)

func init() {
	rootCmd.AddCommand(emitCmd)

	emitCmd.Flags().IntVarP(&emitProducers, "producers", "p", 0, "Number of concurrent producers (default: emit.producers)")
	emitCmd.Flags().IntVarP(&emitEvents, "events", "n", 0, "Events per producer (default: emit.events)")
}

// emitStats counts what happened during one emit run
type emitStats struct {
	published atomic.Int64
	received  atomic.Int64
	failed    atomic.Int64
}

func runEmit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("producers") {
		cfg.Emit.Producers = emitProducers
	}
	if cmd.Flags().Changed("events") {
		cfg.Emit.Events = emitEvents
	}
	if cfg.Emit.Producers < 1 {
		return fmt.Errorf("--producers must be at least 1")
	}
	if cfg.Emit.Events < 0 {
		return fmt.Errorf("--events must be non-negative")
	}

	a, err := app.New(cfg, app.WithOutput(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.LogEvents(); err != nil {
		return err
	}

	var stats emitStats
	if err := countDeliveries(a, &stats); err != nil {
		return err
	}

	var wg conc.WaitGroup
	for p := range cfg.Emit.Producers {
		wg.Go(func() {
			for i := range cfg.Emit.Events {
				if err := publishSample(a.Events, p, i); err != nil {
					stats.failed.Add(1)
				}
				stats.published.Add(1)
			}
		})
	}
	if r := wg.WaitAndRecover(); r != nil {
		return fmt.Errorf("producer panicked: %w", r.AsError())
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "published %d events from %d producers: %d delivered, %d with failed subscribers\n",
		stats.published.Load(), cfg.Emit.Producers, stats.received.Load(), stats.failed.Load())
	return err
}

// countDeliveries subscribes one counter per event kind.
func countDeliveries(a *app.App, stats *emitStats) error {
	count := func() { stats.received.Add(1) }
	if _, err := app.Track(a, func(events.ConnectionStatusChanged) { count() }); err != nil {
		return err
	}
	if _, err := app.Track(a, func(events.FlightPhaseChanged) { count() }); err != nil {
		return err
	}
	if _, err := app.Track(a, func(events.ServiceStatusChanged) { count() }); err != nil {
		return err
	}
	return nil
}

var (
	sampleConnections = []string{"SimConnect", "Prosim", "GSX"}
	sampleServices    = []string{"Refueling", "Boarding", "Catering", "Cargo", "Doors", "Pushback", "Deice"}
)

// publishSample publishes event i of producer p. The kind rotates so every
// producer exercises every bucket.
func publishSample(agg *event.Aggregator, p, i int) error {
	n := p + i
	switch i % 3 {
	case 0:
		name := sampleConnections[n%len(sampleConnections)]
		return event.Publish(agg, events.NewConnectionStatusChanged(name, n%2 == 0))
	case 1:
		prev := events.FlightPhase(n % int(events.PhaseTurnaround+1))
		next := (prev + 1) % (events.PhaseTurnaround + 1)
		return event.Publish(agg, events.NewFlightPhaseChanged(prev, next))
	default:
		service := sampleServices[n%len(sampleServices)]
		status := events.ServiceStatus(n % int(events.ServiceFailed+1))
		return event.Publish(agg, events.NewServiceStatusChanged(service, status))
	}
}
