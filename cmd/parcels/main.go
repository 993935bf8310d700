// Command parcels tracks deliveries from USPS, UPS and FedEx.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/parcels/internal/adapters/driven/config/file"
	"github.com/custodia-labs/parcels/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	dir, err := file.DefaultDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: locating home directory: %v\n", err)
		os.Exit(1)
	}

	cli.SetVersion(version)
	cli.SetBootstrap(newBootstrap(dir))

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
