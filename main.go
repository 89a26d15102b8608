package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/shruti/nursebot/cmd"
)

func main() {
	// Local development keeps API keys in a .env file; absence is fine.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
