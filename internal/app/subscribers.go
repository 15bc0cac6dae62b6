package app

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/groundcrew/internal/events"
	"github.com/Iron-Ham/groundcrew/internal/logging"
)

// LogEvents subscribes loggers for every event kind in package events. Each
// event is written through the Service under the category of the system
// it concerns.
func (a *App) LogEvents() error {
	if _, err := Track(a, a.logConnection); err != nil {
		return err
	}
	if _, err := Track(a, a.logFlightPhase); err != nil {
		return err
	}
	if _, err := Track(a, a.logServiceStatus); err != nil {
		return err
	}
	return nil
}

func (a *App) logConnection(e events.ConnectionStatusChanged) {
	level := logging.LevelInfo
	state := "connected"
	if !e.IsConnected {
		level = logging.LevelWarning
		state = "disconnected"
	}
	a.Log.Log(level, "connection",
		fmt.Sprintf("%s %s", e.ConnectionName, state),
		connectionCategory(e.Type), logging.CategoryEvents)
}

func (a *App) logFlightPhase(e events.FlightPhaseChanged) {
	a.Log.Logf(logging.LevelInfo, logging.CategoryFlightPhase, "flightphase",
		"%s -> %s", e.Previous, e.Current)
}

func (a *App) logServiceStatus(e events.ServiceStatusChanged) {
	level := logging.LevelInfo
	if e.Status == events.ServiceFailed {
		level = logging.LevelError
	}
	a.Log.Log(level, e.Service,
		fmt.Sprintf("%s %s", e.Service, strings.ToLower(e.Status.String())),
		serviceCategory(e.Service))
}

func connectionCategory(t events.ConnectionType) logging.Category {
	switch t {
	case events.ConnectionSimConnect:
		return logging.CategorySimConnect
	case events.ConnectionProsim:
		return logging.CategoryProsim
	default:
		return logging.CategoryEvents
	}
}

// serviceCategory maps a ground service name such as "Refueling" to the
// category of the same name, falling back to Events.
func serviceCategory(service string) logging.Category {
	cat, err := logging.ParseCategory(service)
	if err != nil || cat == logging.CategoryAll {
		return logging.CategoryEvents
	}
	return cat
}
