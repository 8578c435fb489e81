package main

import (
	"fmt"
	"os"

	"github.com/noah-isme/course-portal-api/internal/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return cli.NewRootCmd(cli.NewApp()).Execute()
}
