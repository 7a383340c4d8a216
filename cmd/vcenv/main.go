package main

import (
	"os"

	"github.com/danieljhkim/vcenv/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)

	err := cli.Execute()
	cli.ReportError(err)
	os.Exit(cli.ExitCode(err))
}
