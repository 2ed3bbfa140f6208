// Package config handles configuration for the server: defaults, an
// optional JSON overlay, and command-line flags, applied in that order.
package config

import "time"

// Config holds runtime settings for the backend.
//
// Fields:
//   - Addr: bind address for the HTTP API.
//   - GitHubToken: bearer token for the contents API. Required in prod.
//   - RepoOwner / RepoName / Branch: coordinates of the storage repository.
//   - DBPath: path of the state document inside the repository.
//   - SecretKey: HMAC secret for signing access tokens (HS256). Do not use
//     the test default in prod.
//   - AccessTokenValidityDuration: access token lifetime.
//   - BcryptCost: work factor for password hashing.
type Config struct {
	Addr                        string
	GitHubToken                 string
	RepoOwner                   string
	RepoName                    string
	Branch                      string
	DBPath                      string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	BcryptCost                  int
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.GitHubToken = ""
	c.RepoOwner = "zenibaba"
	c.RepoName = "ZEXXY_KEYAUTH"
	c.Branch = "main"
	c.DBPath = "db.json"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.BcryptCost = 10
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
