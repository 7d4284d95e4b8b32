package cli

import (
	"github.com/spf13/cobra"
)

func newNoticeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notice",
		Short: "Notice board commands",
	}

	cmd.AddCommand(newNoticeListCmd())
	cmd.AddCommand(newNoticePostCmd())

	return cmd
}

func newNoticeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notices on the board",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result NoticeList

			if err := client.Get("/api/v1/notices", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newNoticePostCmd() *cobra.Command {
	var title, message, postedBy string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a notice (requires admin authorization)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"title":     title,
				"message":   message,
				"posted_by": postedBy,
			}
			var result Notice

			if err := client.Post("/api/v1/notices", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Notice title (required)")
	cmd.Flags().StringVar(&message, "message", "", "Notice message (required)")
	cmd.Flags().StringVar(&postedBy, "by", "", "Poster name (defaults to Admin)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}
