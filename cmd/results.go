package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	resultrepo "github.com/ytscout/ytscout/internal/repository/result"
)

// resultsCmd represents the results command
var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Work with saved search results",
}

// resultsListCmd lists saved results
var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved search results",
	Long:  `List search results previously saved with 'ytscout search --save'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		keyword, _ := cmd.Flags().GetString("keyword")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_, dbPool, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer dbPool.Close()

		repo := resultrepo.NewRepository(dbPool)
		records, err := repo.List(ctx, keyword, limit, offset)
		if err != nil {
			return fmt.Errorf("failed to list results: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No saved results found.")
			return nil
		}

		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format results: %w", err)
		}
		fmt.Printf("Found %d result(s):\n%s\n", len(records), string(out))
		return nil
	},
}

func init() {
	resultsListCmd.Flags().String("keyword", "", "Only show results for this keyword")
	resultsListCmd.Flags().Int("limit", 20, "Maximum number of results to show")
	resultsListCmd.Flags().Int("offset", 0, "Number of results to skip")

	resultsCmd.AddCommand(resultsListCmd)
	rootCmd.AddCommand(resultsCmd)
}
