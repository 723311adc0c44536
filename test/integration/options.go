package integration

import (
	"flag"
)

var (
	verbose bool
)

func init() {
	flag.BoolVar(&verbose, "verbose", false, "Flag to define whether component logs are streamed to the ginkgo writer")
}
