package main

import (
	"github.com/joho/godotenv"

	"github.com/naka-gawa/github-activity/cmd"
)

func main() {
	// Populate the environment from .env when present; a missing file is
	// not an error.
	_ = godotenv.Load()

	cmd.Execute()
}
