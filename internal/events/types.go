// Package events defines the event payloads exchanged through the
// aggregator. Each payload is an immutable value: producers build a fresh
// value for every occurrence and never modify it after publishing.
package events

import "time"

// -----------------------------------------------------------------------------
// Connection Events
// -----------------------------------------------------------------------------

// ConnectionType identifies the external system behind a connection.
type ConnectionType int

const (
	ConnectionUnknown ConnectionType = iota
	ConnectionSimConnect
	ConnectionProsim
	ConnectionGSX
)

// String returns the display name of the connection type.
func (c ConnectionType) String() string {
	switch c {
	case ConnectionSimConnect:
		return "SimConnect"
	case ConnectionProsim:
		return "Prosim"
	case ConnectionGSX:
		return "GSX"
	default:
		return "Unknown"
	}
}

// connectionTypeFor maps a connection name to its type.
func connectionTypeFor(name string) ConnectionType {
	for _, c := range []ConnectionType{ConnectionSimConnect, ConnectionProsim, ConnectionGSX} {
		if c.String() == name {
			return c
		}
	}
	return ConnectionUnknown
}

// ConnectionStatusChanged is published when a connection is established or lost.
type ConnectionStatusChanged struct {
	ConnectionName string         // Display name, e.g. "Prosim"
	Type           ConnectionType // Parsed from ConnectionName when known
	IsConnected    bool           // New state of the connection
	At             time.Time      // When the change was observed
}

// NewConnectionStatusChanged creates a ConnectionStatusChanged stamped with
// the current time.
func NewConnectionStatusChanged(name string, connected bool) ConnectionStatusChanged {
	return ConnectionStatusChanged{
		ConnectionName: name,
		Type:           connectionTypeFor(name),
		IsConnected:    connected,
		At:             time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Flight Phase Events
// -----------------------------------------------------------------------------

// FlightPhase is a stage of the turnaround cycle.
type FlightPhase int

const (
	PhasePreflight FlightPhase = iota
	PhaseDeparture
	PhaseTaxiOut
	PhaseFlight
	PhaseTaxiIn
	PhaseArrival
	PhaseTurnaround
)

var flightPhaseNames = [...]string{
	PhasePreflight:  "Preflight",
	PhaseDeparture:  "Departure",
	PhaseTaxiOut:    "TaxiOut",
	PhaseFlight:     "Flight",
	PhaseTaxiIn:     "TaxiIn",
	PhaseArrival:    "Arrival",
	PhaseTurnaround: "Turnaround",
}

// String returns the phase name.
func (p FlightPhase) String() string {
	if p < 0 || int(p) >= len(flightPhaseNames) {
		return "Unknown"
	}
	return flightPhaseNames[p]
}

// FlightPhaseChanged is published when the flight phase state machine moves.
type FlightPhaseChanged struct {
	Previous FlightPhase
	Current  FlightPhase
	At       time.Time
}

// NewFlightPhaseChanged creates a FlightPhaseChanged stamped with the current time.
func NewFlightPhaseChanged(previous, current FlightPhase) FlightPhaseChanged {
	return FlightPhaseChanged{Previous: previous, Current: current, At: time.Now()}
}

// -----------------------------------------------------------------------------
// Service Status Events
// -----------------------------------------------------------------------------

// ServiceStatus is the state of a ground service.
type ServiceStatus int

const (
	ServiceInactive ServiceStatus = iota
	ServiceRequested
	ServiceActive
	ServiceCompleted
	ServiceFailed
)

// String returns the status name.
func (s ServiceStatus) String() string {
	switch s {
	case ServiceInactive:
		return "Inactive"
	case ServiceRequested:
		return "Requested"
	case ServiceActive:
		return "Active"
	case ServiceCompleted:
		return "Completed"
	case ServiceFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// ServiceStatusChanged is published when a ground service (refueling,
// boarding, catering, ...) changes state.
type ServiceStatusChanged struct {
	Service string
	Status  ServiceStatus
	At      time.Time
}

// NewServiceStatusChanged creates a ServiceStatusChanged stamped with the current time.
func NewServiceStatusChanged(service string, status ServiceStatus) ServiceStatusChanged {
	return ServiceStatusChanged{Service: service, Status: status, At: time.Now()}
}
