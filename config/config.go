package config

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL        string
	RedisAddress string
	ClientURL    string
	ListenAddr   string
}

// GetClientURL returns the frontend origin allowed by CORS.
func (c *AppConfig) GetClientURL() string {
	return c.ClientURL
}
