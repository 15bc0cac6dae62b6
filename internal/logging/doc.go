// Package logging provides the categorized logging gate for groundcrew and
// the sinks that render what passes it.
//
// # Main Types
//
//   - [Service]: process-wide gate holding the minimum [Level] and the active
//     [Category] set. Every Log call is checked against both before the sink
//     sees it.
//   - [Category]: bit-flag set of log categories (SimConnect, Refueling,
//     Boarding, ...), with Union, Without and Intersects.
//   - [Level]: ordered severity scale from [LevelDebug] to [LevelCritical].
//   - [Preset]: named category/level combination applied by
//     [Service.SetupServiceLogging].
//   - [Sink]: destination for messages that pass the gate. [Logger] writes
//     JSON through log/slog, [ConsoleSink] writes colored lines through
//     zerolog.
//
// # Thread Safety
//
// The filter state of a [Service] is an immutable snapshot behind an atomic
// pointer. Log, Enabled, IsCategoryActive and the accessors load it without
// locking; mutators serialize among themselves and publish a complete new
// snapshot, so a half-applied SetActiveCategories is never observable.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/var/log/groundcrew/groundcrew.log", logging.LevelDebug)
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	svc := logging.NewService(logger)
//	if err := svc.SetupServiceLogging("refueling"); err != nil {
//	    return err
//	}
//
//	svc.Log(logging.LevelInfo, "FuelService", "refuel started", logging.CategoryRefueling) // written
//	svc.Log(logging.LevelInfo, "Boarding", "door opened", logging.CategoryDoors)           // filtered
//
// # Presets
//
// The preset table is fixed at build time:
//
//	refueling    simconnect|refueling
//	boarding     boarding|doors
//	catering     catering|doors
//	all          every category
//	critical     every category, minimum level CRITICAL
//	cargo        cargo|doors
//	departure    flightphase|pushback|deice
//	connections  simconnect|prosim|events
//
// Presets without a level keep the current minimum level.
package logging
