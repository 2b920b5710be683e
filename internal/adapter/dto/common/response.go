package common

// HealthResponse reports liveness and which integrations are wired
type HealthResponse struct {
	Status       string            `json:"status"`
	Environment  string            `json:"environment"`
	Sessions     int               `json:"sessions"`
	Integrations map[string]string `json:"integrations"`
}

// Integration states reported by the health endpoint
const (
	StatusOK           = "ok"
	StatusDegraded     = "degraded"
	StatusDisabled     = "disabled"
	StatusDisconnected = "disconnected"
)
