// ABOUTME: 'fishbone serve' runs the chart viewer with the progress store and live rendering.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/2389-research/fishbone/config"
	"github.com/2389-research/fishbone/diagram"
	"github.com/2389-research/fishbone/progress"
	"github.com/2389-research/fishbone/web"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generated charts over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd)
		},
	}
	addServerFlags(cmd)
	return cmd
}

func addServerFlags(cmd *cobra.Command) {
	cmd.Flags().String("host", config.DefaultHost, "Listen host")
	cmd.Flags().Int("port", config.DefaultPort, "Listen port")
	cmd.Flags().String("out", "", "Directory holding generated charts (default: output)")
	cmd.Flags().String("model", "", "Model file used to render missing charts on demand")
	cmd.Flags().String("lang", "", "Language of --model: zh or en (default: zh)")
	cmd.Flags().String("db", "", "Progress database (default: $XDG_DATA_HOME/fishbone/progress.db)")
	cmd.Flags().Duration("cache-ttl", config.DefaultCacheTTL, "How long live renders stay cached")
}

// liveModels maps each locale to the model it renders on demand: the
// configured model for the configured language, bundled models otherwise.
func liveModels(cfg *config.Config) map[string]string {
	models := make(map[string]string)
	for _, l := range diagram.Locales() {
		path := config.DefaultModelPath(l.Code)
		if l.Code == cfg.Lang {
			path = cfg.Model
		}
		if _, err := os.Stat(path); err == nil {
			models[l.Code] = path
		}
	}
	return models
}

func (a *app) serve(cmd *cobra.Command) error {
	store, err := progress.Open(a.cfg.Server.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	srv, err := web.NewServer(web.Config{
		Addr:     a.cfg.Server.Addr(),
		OutDir:   a.cfg.OutDir,
		Models:   liveModels(a.cfg),
		Progress: store,
		CacheTTL: a.cfg.Server.CacheTTL,
		Logger:   a.log,
	})
	if err != nil {
		return err
	}

	printBanner(cmd.OutOrStdout(), a.cfg)
	a.log.Info("progress store opened", zap.String("path", a.cfg.Server.DB))
	return srv.ListenAndServe(cmd.Context())
}

func printBanner(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, titleStyle.Render("🚀 AI Maturity Model Visualization Server"))
	fmt.Fprintln(w, labelled("directory", cfg.OutDir))
	fmt.Fprintln(w, labelled("url", fmt.Sprintf("http://localhost:%d", cfg.Server.Port)))
	fmt.Fprintln(w, "Available routes:")
	routes := [][2]string{
		{"/", "Home page (recommended starting point)"},
		{"/interactive", "Interactive version (Chinese)"},
		{"/ultra", "Ultra clean layout version (Chinese)"},
		{"/interactive_en", "Interactive version (English)"},
		{"/ultra_en", "Ultra clean layout version (English)"},
		{"/list", "File list API"},
		{"/model", "Model overview"},
	}
	for _, r := range routes {
		fmt.Fprintf(w, "  %-16s %s\n", r[0], mutedStyle.Render(r[1]))
	}
	fmt.Fprintln(w, mutedStyle.Render("Press Ctrl+C to stop"))
}
