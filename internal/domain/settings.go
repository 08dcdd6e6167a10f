package domain

import "time"

// Settings is the singleton connection configuration shown on the settings
// page. A single row is seeded by migration; only admins may update it.
type Settings struct {
	ServerIP    string    `json:"server_ip"`
	ServerPort  string    `json:"server_port"`
	BackendPort string    `json:"backend_port"`
	UpdatedAt   time.Time `json:"updated_at"`
}
