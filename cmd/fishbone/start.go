// ABOUTME: 'fishbone start' checks that charts exist, offers to generate them, then runs the viewer.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/2389-research/fishbone/config"
	"github.com/2389-research/fishbone/diagram"
	"github.com/2389-research/fishbone/generate"
	"github.com/2389-research/fishbone/web"
)

func newStartCommand(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Check for generated charts, offer to generate them, then serve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.checkCharts(cmd, yes)
			if err != nil {
				return err
			}
			if !ok {
				return errSilent
			}
			return a.serve(cmd)
		},
	}
	addServerFlags(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Generate missing charts without asking")
	return cmd
}

// checkCharts lists the charts in the output directory. When there are none
// it asks whether to generate them; false means the user declined.
func (a *app) checkCharts(cmd *cobra.Command, yes bool) (bool, error) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("🚀 AI Maturity Model Visualization Server"))

	files, err := web.ListCharts(a.cfg.OutDir)
	if err != nil {
		return false, err
	}
	if len(files) > 0 {
		printChartFiles(out, files)
		printBuildInfo(out, a.cfg.OutDir)
		return true, nil
	}

	fmt.Fprintln(out, failStyle.Render("❌ No HTML files found in "+a.cfg.OutDir))
	if !yes && !confirm(a.in, out, "Generate charts now? (y/n): ") {
		fmt.Fprintln(out, warnStyle.Render("Run 'fishbone generate' to create the chart files first."))
		return false, nil
	}

	for _, l := range diagram.Locales() {
		path := config.DefaultModelPath(l.Code)
		if l.Code == a.cfg.Lang {
			path = a.cfg.Model
		}
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("skipping %s: no model at %s", l.Code, path)))
			continue
		}
		man, err := a.generate(cmd, l, path, "")
		if err != nil {
			return false, err
		}
		printManifest(out, man, a.cfg.OutDir)
	}

	files, err = web.ListCharts(a.cfg.OutDir)
	if err != nil {
		return false, err
	}
	if len(files) == 0 {
		return false, fmt.Errorf("no charts were generated in %s", a.cfg.OutDir)
	}
	printChartFiles(out, files)
	return true, nil
}

func printChartFiles(w io.Writer, files []web.ChartFile) {
	fmt.Fprintln(w, okStyle.Render(fmt.Sprintf("✅ Found %d HTML files", len(files))))
	for _, f := range files {
		fmt.Fprintf(w, "   - %s (%s)\n", f.Name, f.SizeMB())
	}
}

// printBuildInfo notes which build produced the charts when a manifest exists.
func printBuildInfo(w io.Writer, dir string) {
	man, err := generate.ReadManifest(dir)
	if err != nil {
		return
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("   manifest: %d charts, build %s, generated %s",
		len(man.Files), man.BuildID, man.GeneratedAt.Local().Format(time.DateTime))))
}

// confirm prompts on w and reads one answer from r. y, yes, and 是 accept.
func confirm(r io.Reader, w io.Writer, prompt string) bool {
	fmt.Fprint(w, prompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(w)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "是":
		return true
	}
	return false
}
