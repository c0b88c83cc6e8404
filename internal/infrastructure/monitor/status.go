package monitor

import "time"

type Status struct {
	PostgreSQL   bool      `json:"postgresql"`
	Redis        bool      `json:"redis"`
	ViewSpool    bool      `json:"view_spool"`
	PendingViews int       `json:"pending_views"`
	LastCheck    time.Time `json:"last_check"`
}
