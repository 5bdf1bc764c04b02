package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	xlog "github.com/xluoyu/corgi-docs/internal/log"
	"github.com/xluoyu/corgi-docs/internal/validate"
	"github.com/xluoyu/corgi-docs/site"
)

// app carries the global flags shared by every command.
type app struct {
	configFile string
	logLevel   string
	logger     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "corgictl",
		Short: "corgictl - work with the Corgi docs site descriptor",
		Long: `corgictl loads a site descriptor (TOML, YAML or JSON), checks it
and exports it in the format the site generator reads.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			xlog.Configure(xlog.Config{Level: a.logLevel, Output: cmd.ErrOrStderr(), Console: true, Service: "corgictl"})
			a.logger = xlog.WithComponent(cmd.Name())
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "descriptor file (default is the built-in descriptor)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newExportCmd(a),
		newValidateCmd(a),
		newCheckCmd(a),
		newSidebarCmd(a),
		newScaffoldCmd(a),
	)
	return root
}

// load returns the descriptor named by --config, or the built-in one.
func (a *app) load() (*site.Descriptor, error) {
	if a.configFile == "" {
		a.logger.Debug().Msg("using built-in descriptor")
		return site.Default(), nil
	}
	a.logger.Debug().Str("config", a.configFile).Msg("loading descriptor")
	return site.LoadFile(a.configFile)
}

// source names the descriptor for messages.
func (a *app) source() string {
	if a.configFile == "" {
		return "built-in descriptor"
	}
	return a.configFile
}

func newExportCmd(a *app) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the descriptor as json, yaml, toml or a js module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := exportFormat(format, out)
			if err != nil {
				return err
			}
			d, err := a.load()
			if err != nil {
				return err
			}
			if err := d.Validate(); err != nil {
				a.logger.Warn().Err(err).Msg("exporting an invalid descriptor")
			}
			var buf bytes.Buffer
			if err := site.Encode(&buf, d, f); err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			a.logger.Info().Str("out", out).Str("format", string(f)).Msg("exported descriptor")
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: json, yaml, toml or js (default from --out, else json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

// exportFormat picks the format from the flag, then the output file name.
func exportFormat(format, out string) (site.Format, error) {
	switch {
	case format != "":
		return site.ParseFormat(format)
	case out != "":
		return site.FormatOf(out)
	}
	return site.JSON, nil
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the descriptor for configuration errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.load()
			if err != nil {
				return err
			}
			if err := d.Validate(); err != nil {
				printProblems(cmd.OutOrStdout(), err)
				return fmt.Errorf("%s is invalid", a.source())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", a.source())
			return nil
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	var docs string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the descriptor and verify every internal link has a document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.load()
			if err != nil {
				return err
			}
			v := validate.New()
			v.Merge("descriptor", d.Validate())
			v.Merge("docs", d.CheckLinks(os.DirFS(docs)))
			if err := v.Err(); err != nil {
				printProblems(cmd.OutOrStdout(), err)
				return fmt.Errorf("%s: check failed", a.source())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d links ok\n", a.source(), len(d.Links()))
			return nil
		},
	}
	cmd.Flags().StringVar(&docs, "docs", "docs", "folder of markdown documents")
	return cmd
}

func newSidebarCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sidebar ROUTE",
		Short: "Print the sidebar shown for a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.load()
			if err != nil {
				return err
			}
			g, err := d.SidebarFor(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), g)
		},
	}
}

func newScaffoldCmd(a *app) *cobra.Command {
	var docs, text, format string
	cmd := &cobra.Command{
		Use:   "scaffold PREFIX",
		Short: "Propose a sidebar section from the documents under PREFIX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sec, err := site.Scaffold(os.DirFS(docs), args[0], text)
			if err != nil {
				return err
			}
			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), sec)
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(sec); err != nil {
					return err
				}
				return enc.Close()
			}
			return fmt.Errorf("scaffold: %w: %q", site.ErrUnknownFormat, format)
		},
	}
	cmd.Flags().StringVar(&docs, "docs", "docs", "folder of markdown documents")
	cmd.Flags().StringVar(&text, "text", "", "section label (default from index.md or the folder name)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printProblems lists each field error on its own line.
func printProblems(w io.Writer, err error) {
	var ve validate.ValidationError
	if errors.As(err, &ve) {
		for _, e := range ve.Errors() {
			fmt.Fprintf(w, "  %s\n", e)
		}
		return
	}
	fmt.Fprintf(w, "  %s\n", err)
}
