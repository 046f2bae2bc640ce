package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gscholar/internal/scholar"
)

var profileCmd = &cobra.Command{
	Use:   "profile <user-id>",
	Short: "Scrape an author profile's publication listing",
	Long: `Profile scrapes the publication table of a Scholar author profile
(the id from the profile URL's user parameter), paginating through the
listing until it is exhausted or a bound is hit.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfile,
}

func init() {
	addScrapeFlags(profileCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	userID := args[0]
	if userID == "" {
		return fmt.Errorf("empty profile user id")
	}

	q := scholar.Query{AuthorID: userID}
	return runScrape(cmd, q, "profile:"+userID)
}
