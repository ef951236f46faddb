// Package main provides the entry point for the interview coach CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "interview_agent",
	Short: "Technical Interview Coach",
	Long:  "Interview Coach runs simulated technical interviews in Russian: an intake agent parses the candidate's introduction, a fact checker screens each answer, an interviewer drives the conversation, and a reporter produces structured hiring feedback.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
