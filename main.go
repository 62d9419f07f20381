package main

import (
	"github.com/joho/godotenv"

	"github.com/ytscout/ytscout/cmd"
)

func main() {
	// A missing .env file is fine; variables may be set in the environment
	_ = godotenv.Load()

	cmd.Execute()
}
