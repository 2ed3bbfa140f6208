package config

import (
	"flag"
	"os"
	"time"

	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   GitHub API token
//	-o string   storage repository owner
//	-n string   storage repository name
//	-b string   storage repository branch
//	-f string   state document path inside the repository
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-w int      bcrypt cost for password hashing
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-o", "-n", "-b", "-f", "-s", "-t", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.GitHubToken, "g", config.GitHubToken, "GitHub API token")
	fs.StringVar(&config.RepoOwner, "o", config.RepoOwner, "storage repository owner")
	fs.StringVar(&config.RepoName, "n", config.RepoName, "storage repository name")
	fs.StringVar(&config.Branch, "b", config.Branch, "storage repository branch")
	fs.StringVar(&config.DBPath, "f", config.DBPath, "state document path")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	fs.IntVar(&config.BcryptCost, "w", config.BcryptCost, "bcrypt cost")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
}
