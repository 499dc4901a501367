package dto

import "time"

// HealthResponse описывает состояние сервиса.
type HealthResponse struct {
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Database    string    `json:"database"`
	Environment string    `json:"environment"`
}
