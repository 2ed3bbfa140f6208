package config

import (
	"encoding/json"
	"os"

	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/flagx"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/timex"
)

// JsonConfig is the intermediate DTO for reading a JSON configuration file.
// Duration fields use timex.Duration so values can be either strings such
// as "60m" or integer nanoseconds. After unmarshalling, its fields are
// copied into the runtime Config.
type JsonConfig struct {
	Addr                        string         `json:"addr"`
	GitHubToken                 string         `json:"github_token"`
	RepoOwner                   string         `json:"repo_owner"`
	RepoName                    string         `json:"repo_name"`
	Branch                      string         `json:"branch"`
	DBPath                      string         `json:"db_path"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config command-line flags. When neither flag is set, nothing is
// loaded. Only non-zero values override the target Config. If the file
// cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.Addr != "" {
		config.Addr = c.Addr
	}
	if c.GitHubToken != "" {
		config.GitHubToken = c.GitHubToken
	}
	if c.RepoOwner != "" {
		config.RepoOwner = c.RepoOwner
	}
	if c.RepoName != "" {
		config.RepoName = c.RepoName
	}
	if c.Branch != "" {
		config.Branch = c.Branch
	}
	if c.DBPath != "" {
		config.DBPath = c.DBPath
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
}
