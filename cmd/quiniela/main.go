package main

import (
	"github.com/joho/godotenv"

	"github.com/cards10e/laquiniela247/internal/cli"
)

func main() {
	// A .env file is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cli.Execute()
}
