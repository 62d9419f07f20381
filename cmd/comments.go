package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/ytscout/ytscout/internal/errors"
	"github.com/ytscout/ytscout/internal/service/comments"
	"github.com/ytscout/ytscout/internal/service/youtube"
)

const (
	minCommentLimit = 10
	maxCommentLimit = 500
)

// commentsCmd represents the comments command
var commentsCmd = &cobra.Command{
	Use:   "comments [VIDEO_ID]",
	Short: "Fetch top comments for a video",
	Long: `Page through a video's top-level comments (ordered by relevance) until the
requested count is reached or the feed runs out.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoID := args[0]

		limit, _ := cmd.Flags().GetInt("limit")
		if limit < minCommentLimit {
			limit = minCommentLimit
		}
		if limit > maxCommentLimit {
			limit = maxCommentLimit
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		_, dbPool, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer dbPool.Close()

		manager, err := loadKeyManager(ctx, dbPool)
		if err != nil {
			return err
		}
		if manager.Pool().Len() == 0 {
			return apperrors.New(apperrors.CodeNoCredentials, "no API keys configured. Run 'ytscout keys add' first")
		}

		paginator := comments.NewPaginator(youtube.NewClient(), manager.Pool())
		if err := paginator.Open(videoID); err != nil {
			return err
		}

		result, err := paginator.LoadTarget(ctx, limit)
		if err != nil {
			return fmt.Errorf("failed to load comments: %s", apperrors.TranslateError(err))
		}

		switch result.Outcome {
		case comments.OutcomeNoComments:
			fmt.Println("No comments found for this video.")
			return nil
		case comments.OutcomeExhausted:
			fmt.Printf("Only %d comment(s) available (requested %d):\n\n", len(result.Comments), limit)
		default:
			fmt.Printf("Top %d comment(s):\n\n", len(result.Comments))
		}

		for _, comment := range result.Comments {
			fmt.Printf("%s  (%d likes, %d replies)  %s\n", comment.Author, comment.LikeCount, comment.ReplyCount, comment.PublishedAt.Format("2006-01-02"))
			fmt.Printf("  %s\n\n", comment.Text)
		}
		return nil
	},
}

func init() {
	commentsCmd.Flags().Int("limit", 100, "Number of comments to fetch (10-500)")
	rootCmd.AddCommand(commentsCmd)
}
