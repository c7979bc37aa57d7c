package entity

import "time"

// Feedback mensaje de soporte/sugerencia enviado desde la UI.
type Feedback struct {
	ID        string
	Email     string
	Message   string
	CreatedAt time.Time
}
