package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Adda-Baaj/newstimes/internal/display"
)

func newOpenCmd(a *app) *cobra.Command {
	var (
		section      string
		assumeOnline bool
	)

	cmd := &cobra.Command{
		Use:   "open <n>",
		Short: "Open the n-th listed article in the browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("article number must be a positive integer, got %q", args[0])
			}

			sess, err := a.newSession(assumeOnline)
			if err != nil {
				return err
			}
			defer sess.Close()

			res, err := sess.fetch(cmd.Context(), section)
			if err != nil {
				return err
			}
			if res.Failed() || len(res.Articles) == 0 {
				return display.Render(cmd.OutOrStdout(), res, display.Options{Colors: a.colors()})
			}
			if n > len(res.Articles) {
				return fmt.Errorf("article %d does not exist, only %d listed", n, len(res.Articles))
			}

			art := res.Articles[n-1]
			a.log.DebugObj("opening article", "article_open", map[string]any{
				"url": art.URL,
			})
			if err := a.opener.Open(art.URL); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", art.URL)
			return nil
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "section filter for this run only")
	cmd.Flags().BoolVar(&assumeOnline, "assume-online", false, "skip the connectivity check")
	return cmd
}
