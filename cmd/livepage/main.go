// livepage serves a static page confirming that the deployment pipeline
// reached production.
package main

import (
	"os"

	"github.com/0xReLogic/livepage/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger := logging.L()
		logger.Error().Err(err).Msg("livepage failed to start")
		os.Exit(1)
	}
}
