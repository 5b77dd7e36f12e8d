package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ben-kodbiz/quranlingo/internal/cli"
)

func main() {
	// A .env file is optional; QURANLINGO_* variables may come from the environment
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
