package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/ytscout/ytscout/internal/errors"
	"github.com/ytscout/ytscout/internal/model"
	resultrepo "github.com/ytscout/ytscout/internal/repository/result"
	"github.com/ytscout/ytscout/internal/service/search"
	"github.com/ytscout/ytscout/internal/service/summary"
	"github.com/ytscout/ytscout/internal/service/youtube"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [KEYWORDS...]",
	Short: "Search YouTube across multiple keywords",
	Long: `Search YouTube for one or more keywords (comma or newline separated) and
print one summary line per result. Keys rotate automatically when one runs
out of quota.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keywords := search.ParseKeywords(strings.Join(args, ","))
		if len(keywords) == 0 {
			return fmt.Errorf("no keywords given")
		}

		count, _ := cmd.Flags().GetInt64("count")
		published, _ := cmd.Flags().GetString("published")
		resultType, _ := cmd.Flags().GetString("type")
		videoDuration, _ := cmd.Flags().GetString("video-duration")
		feature, _ := cmd.Flags().GetString("feature")
		order, _ := cmd.Flags().GetString("order")
		fields, _ := cmd.Flags().GetStringSlice("fields")
		extras, _ := cmd.Flags().GetStringSlice("extra")
		suffix, _ := cmd.Flags().GetString("suffix")
		customDuration, _ := cmd.Flags().GetString("custom-duration")
		tsv, _ := cmd.Flags().GetBool("tsv")
		save, _ := cmd.Flags().GetBool("save")
		outFile, _ := cmd.Flags().GetString("out")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		cfg, dbPool, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer dbPool.Close()

		manager, err := loadKeyManager(ctx, dbPool)
		if err != nil {
			return err
		}

		composer := summary.NewComposer()
		for _, extra := range extras {
			if err := composer.EnableExtra(extra); err != nil {
				return err
			}
		}

		opts := summary.Options{
			Fields:         fields,
			CustomSuffix:   suffix,
			CustomDuration: customDuration,
		}

		svc := search.NewService(youtube.NewClient(), manager.Pool(), composer, cfg.RegionCode, cfg.RelevanceLanguage)
		outcome, err := svc.Search(ctx, search.Request{
			Keywords: keywords,
			Count:    count,
			Filters: search.Filters{
				Published:     published,
				Type:          resultType,
				VideoDuration: videoDuration,
				Feature:       feature,
				Order:         order,
			},
			Summary: opts,
		})
		if err != nil {
			return fmt.Errorf("search failed: %s", apperrors.TranslateError(err))
		}

		for _, warning := range outcome.Warnings {
			fmt.Printf("Warning: %s\n", warning)
		}
		for _, kwErr := range outcome.Errors {
			fmt.Printf("Search failed for %q: %s\n", kwErr.Keyword, apperrors.TranslateError(kwErr.Err))
		}

		if len(outcome.Records) == 0 {
			if len(outcome.Errors) > 0 {
				return fmt.Errorf("all keyword searches failed")
			}
			fmt.Println("No results.")
			return nil
		}

		// Compose embeds the duration at build time; an override needs a
		// recomposition pass over the full set
		if customDuration != "" {
			if err := composer.Recompose(outcome.Records, opts); err != nil {
				return err
			}
		}

		var out io.Writer = os.Stdout
		if outFile != "" {
			f, err := os.Create(outFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if tsv {
			writeTSV(out, outcome.Records)
		} else {
			for _, record := range outcome.Records {
				fmt.Fprintln(out, record.Summary)
			}
		}
		if outFile != "" {
			fmt.Printf("Wrote %d result(s) to %s\n", len(outcome.Records), outFile)
		}

		if save {
			repo := resultrepo.NewRepository(dbPool)
			if err := repo.SaveBatch(ctx, outcome.Records); err != nil {
				return fmt.Errorf("failed to save results: %w", err)
			}
			fmt.Printf("Saved %d result(s) to the database.\n", len(outcome.Records))
		}

		return nil
	},
}

// writeTSV prints the full row set tab-separated, one header line first
func writeTSV(out io.Writer, records []*model.ResultRecord) {
	columns := []string{
		"keyword", "title", "video_id", "video_url", "channel_name",
		"channel_id", "channel_url", "duration", "view_count", "thumbnail", "summary",
	}
	fmt.Fprintln(out, strings.Join(columns, "\t"))

	for _, r := range records {
		row := []string{
			r.Keyword, r.Title, r.VideoID, r.VideoURL, r.ChannelName,
			r.ChannelID, r.ChannelURL, r.Duration, r.ViewCount, r.Thumbnail, r.Summary,
		}
		for i, cell := range row {
			row[i] = strings.ReplaceAll(cell, "\t", " ")
		}
		fmt.Fprintln(out, strings.Join(row, "\t"))
	}
}

func init() {
	searchCmd.Flags().Int64("count", 10, "Results per keyword (max 50)")
	searchCmd.Flags().String("published", "", "Upload recency window: hour, today, week, month, year")
	searchCmd.Flags().String("type", "", "Result type: video, channel, playlist")
	searchCmd.Flags().String("video-duration", "", "Duration bucket: short, medium, long")
	searchCmd.Flags().String("feature", "", "Feature filter: live, 4k, hd, hdr, cc, 360, creativeCommons")
	searchCmd.Flags().String("order", "", "Sort order: relevance, date, viewCount, rating")
	searchCmd.Flags().StringSlice("fields", nil, "Summary fields to emit (canonical order applies)")
	searchCmd.Flags().StringSlice("extra", nil, "Extra summary fields: channelName, videoTitle")
	searchCmd.Flags().String("suffix", "", "Custom suffix appended to every summary")
	searchCmd.Flags().String("custom-duration", "", "Override the duration column for every result")
	searchCmd.Flags().Bool("tsv", false, "Print the full row set tab-separated")
	searchCmd.Flags().Bool("save", false, "Save results to the database")
	searchCmd.Flags().String("out", "", "Write output to a file instead of stdout")

	rootCmd.AddCommand(searchCmd)
}
