package main

import (
	"context"
	"fmt"
	"os"

	"github.com/preston-bernstein/matchboard/internal/cli"
)

var appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	if err := cli.NewRootCommand(appVersion).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "matchboard:", err)
		os.Exit(1)
	}
}
