package dto

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status    string `json:"status" example:"OK"`
	Timestamp string `json:"timestamp" example:"2025-04-23T12:01:05Z"`
	Service   string `json:"service" example:"We Learn API"`
	Database  string `json:"database" example:"up"`
}
