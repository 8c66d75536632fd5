package domain

import "time"

type ServiceStatus struct {
	DatabaseHealthy bool      `json:"database_healthy"`
	RedisHealthy    bool      `json:"redis_healthy"`
	Variants        int       `json:"variants"`
	VariantsLoaded  time.Time `json:"variants_loaded_at"`
	ServerTime      time.Time `json:"server_time"`
}
