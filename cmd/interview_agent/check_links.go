package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/interview-coach/internal/resources"
	"github.com/spf13/cobra"
)

var checkLinksTimeout time.Duration

var checkLinksCmd = &cobra.Command{
	Use:   "check-links",
	Short: "Verify the knowledge base links used in final feedback",
	Long:  `Fetches every link from the study resources table and reports its HTTP status and page title, so dead references can be spotted before they reach a candidate.`,
	RunE:  runCheckLinks,
}

func init() {
	checkLinksCmd.Flags().DurationVar(&checkLinksTimeout, "timeout", resources.DefaultTimeout, "Per-request timeout")
	rootCmd.AddCommand(checkLinksCmd)
}

func runCheckLinks(_ *cobra.Command, _ []string) error {
	opts := resources.DefaultCheckOptions()
	opts.Timeout = checkLinksTimeout

	statuses := resources.CheckAll(context.Background(), opts)

	broken := 0
	for _, s := range statuses {
		switch {
		case s.Err != "":
			broken++
			fmt.Printf("FAIL %-22s %s (%s)\n", s.Topic, s.URL, s.Err)
		case !s.OK():
			broken++
			fmt.Printf("FAIL %-22s %s (HTTP %d)\n", s.Topic, s.URL, s.StatusCode)
		default:
			title := s.Title
			if title == "" {
				title = "<no title>"
			}
			fmt.Printf("OK   %-22s %s (%s)\n", s.Topic, s.URL, title)
		}
	}

	fmt.Printf("\nChecked %d links, %d broken\n", len(statuses), broken)
	if broken > 0 {
		return fmt.Errorf("%d broken links", broken)
	}
	return nil
}
