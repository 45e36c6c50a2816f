package config

import (
	"net/http"
	"time"
)

func NewHTTPClient(cfg *AppConfig) *http.Client {
	return &http.Client{
		Timeout: cfg.APITimeout(),
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 20,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
