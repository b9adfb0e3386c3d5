package domain

// Status enumerates lifecycle states for tickets. The integer codes are a
// stable external contract shared with the dashboard and mobile clients.
type Status int

const (
	StatusNuevo            Status = 1
	StatusAsignado         Status = 2
	StatusEnProceso        Status = 3
	StatusPendienteCliente Status = 4
	StatusResuelto         Status = 5
	StatusCerrado          Status = 6
	StatusReabierto        Status = 7
)

var statusNames = map[Status]string{
	StatusNuevo:            "Nuevo",
	StatusAsignado:         "Asignado",
	StatusEnProceso:        "En Proceso",
	StatusPendienteCliente: "Pendiente Cliente",
	StatusResuelto:         "Resuelto",
	StatusCerrado:          "Cerrado",
	StatusReabierto:        "Reabierto",
}

var statusTransitions = map[Status][]Status{
	StatusNuevo:            {StatusAsignado},
	StatusAsignado:         {StatusEnProceso, StatusNuevo},
	StatusEnProceso:        {StatusPendienteCliente, StatusResuelto},
	StatusPendienteCliente: {StatusEnProceso, StatusResuelto},
	StatusResuelto:         {StatusCerrado, StatusReabierto},
	StatusCerrado:          {StatusReabierto},
	StatusReabierto:        {StatusAsignado, StatusEnProceso},
}

// Name returns the human-facing Spanish label for the status.
func (s Status) Name() string {
	return statusNames[s]
}

// IsValid reports whether the code belongs to the closed status set.
func (s Status) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

// IsTerminal reports whether no further transitions are expected. Cerrado is
// terminal in the linear flow; Reabierto is the only way out of it.
func (s Status) IsTerminal() bool {
	return s == StatusCerrado
}

// CanTransitionTo reports whether the status machine permits moving to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, candidate := range statusTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}
