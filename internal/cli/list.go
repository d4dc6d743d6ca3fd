package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Adda-Baaj/newstimes/internal/crawler"
	"github.com/Adda-Baaj/newstimes/internal/display"
	"github.com/Adda-Baaj/newstimes/internal/domain"
	"github.com/Adda-Baaj/newstimes/pkg/publishers"
)

type listOptions struct {
	section      string
	json         bool
	describe     bool
	publish      bool
	assumeOnline bool
}

func newListCmd(a *app) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the latest articles",
		Long: `Fetch the latest articles for the saved section filter and list them.

Every fetch outcome is rendered: articles, "no news", offline or an error
message. The command only fails on configuration or usage errors.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.section, "section", "s", "", "section filter for this run only")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&opts.describe, "describe", false, "fetch each article page and show its description")
	cmd.Flags().BoolVar(&opts.publish, "publish", false, "send the articles to the configured publishers")
	cmd.Flags().BoolVar(&opts.assumeOnline, "assume-online", false, "skip the connectivity check")
	return cmd
}

func (a *app) runList(cmd *cobra.Command, opts listOptions) error {
	sess, err := a.newSession(opts.assumeOnline)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx := cmd.Context()
	res, err := sess.fetch(ctx, strings.TrimSpace(opts.section))
	if err != nil {
		return err
	}

	if opts.publish && len(res.Articles) > 0 {
		a.publish(ctx, sess, res.Articles)
	}

	if opts.json {
		return display.RenderJSON(cmd.OutOrStdout(), res)
	}

	renderOpts := display.Options{Colors: a.colors()}
	if opts.describe && len(res.Articles) > 0 {
		scraper := crawler.NewScraper(sess.client, a.log)
		renderOpts.Descriptions = crawler.Descriptions(scraper.Describe(ctx, sess.provider, res.Articles))
	}
	return display.Render(cmd.OutOrStdout(), res, renderOpts)
}

// publish fans the articles out to every enabled publisher. Failures are logged only.
func (a *app) publish(ctx context.Context, sess *session, articles []domain.Article) {
	if a.cfg.Publishers.File == "" {
		a.log.WarnObj("publishing requested but publishers.file is not set", "publish_skipped", nil)
		return
	}

	cfgs, err := publishers.LoadConfigs(a.cfg.Publishers.File)
	if err != nil {
		a.log.ErrorObj("loading publishers failed", "publishers_load_error", map[string]any{
			"file":  a.cfg.Publishers.File,
			"error": err.Error(),
		})
		return
	}

	pubs, err := publishers.DefaultFactory().Build(ctx, cfgs, a.log)
	if err != nil {
		a.log.ErrorObj("building publishers failed", "publishers_build_error", map[string]any{
			"error": err.Error(),
		})
		return
	}

	_, _ = publishers.PublishArticles(ctx, pubs, sess.provider.ID, articles, a.log)
}
