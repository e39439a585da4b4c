// ABOUTME: 'fishbone generate' renders the selected diagram variants to HTML files and prints a summary.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2389-research/fishbone/diagram"
	"github.com/2389-research/fishbone/generate"
)

func newGenerateCommand(a *app) *cobra.Command {
	var selection string
	var list bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write chart HTML files for the selected variants",
		Long: "Render the maturity model as fishbone charts. The variant defaults to 'all' for zh\n" +
			"and 'both' (ultra + interactive) for en.",
		Args: cobra.NoArgs,
		Example: `  fishbone generate
  fishbone generate -v interactive --lang en
  fishbone generate --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				printVariants(cmd.OutOrStdout())
				return nil
			}
			locale, err := diagram.LocaleFor(a.cfg.Lang)
			if err != nil {
				return err
			}
			if _, err := generate.Resolve(selection, locale); err != nil {
				return err
			}
			man, err := a.generate(cmd, locale, a.cfg.Model, selection)
			if err != nil {
				return err
			}
			printManifest(cmd.OutOrStdout(), man, a.cfg.OutDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&selection, "version", "v", "", "Variant to generate: basic, detailed, static, ultra, interactive, all, both")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List available variants and exit")
	cmd.Flags().String("lang", "", "Language: zh or en (default: zh)")
	cmd.Flags().String("model", "", "Model file, .json or .yaml (default: bundled model for the language)")
	cmd.Flags().String("out", "", "Output directory (default: output)")
	return cmd
}

// generate loads the model at path and writes the selected charts for locale.
func (a *app) generate(cmd *cobra.Command, locale *diagram.Locale, path, selection string) (*generate.Manifest, error) {
	src, err := generate.LoadSource(path)
	if err != nil {
		return nil, err
	}
	g := &generate.Generator{
		OutDir: a.cfg.OutDir,
		Locale: locale,
		Logger: a.log,
	}
	return g.Generate(cmd.Context(), src, selection)
}

func printVariants(w io.Writer) {
	fmt.Fprintln(w, titleStyle.Render("Available variants"))
	for _, v := range diagram.Variants() {
		fmt.Fprintf(w, "  %-12s %s\n", v, mutedStyle.Render(v.Description()))
	}
	fmt.Fprintf(w, "  %-12s %s\n", generate.SelectAll, mutedStyle.Render("every variant (default for zh)"))
	fmt.Fprintf(w, "  %-12s %s\n", generate.SelectBoth, mutedStyle.Render("ultra and interactive (default for en)"))
}

func printManifest(w io.Writer, man *generate.Manifest, outDir string) {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Charts generated") + "\n")
	b.WriteString(labelled("build", man.BuildID) + "\n")
	b.WriteString(labelled("locale", man.Locale) + "\n")
	b.WriteString(labelled("model", man.ModelPath) + "\n")
	b.WriteString(labelled("output", outDir) + "\n")
	for _, f := range man.Written() {
		b.WriteString(fmt.Sprintf("%s %-12s %s %s\n",
			okStyle.Render("✓"),
			f.Variant,
			f.Name,
			mutedStyle.Render(fmt.Sprintf("(%.1fMB)", float64(f.Bytes)/1024/1024)),
		))
	}
	fmt.Fprintln(w, boxStyle.Render(strings.TrimRight(b.String(), "\n")))
}
