// Command docket tracks and classifies recently filed Supreme Court
// opinions.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/docket-cli/internal/adapters/driving/cli"
)

func main() {
	// Credentials may live in a local .env during development.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
