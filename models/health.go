package models

type HealthResponse struct {
	OK bool `json:"ok"`
}
