package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"ktsuppress/internal/diag"
	"ktsuppress/internal/source"
	"ktsuppress/internal/warnlog"
)

type scanFile struct {
	Path     string         `json:"path"`
	Warnings []diag.Warning `json:"warnings"`
}

type scanPayload struct {
	Log      string     `json:"log"`
	Files    []scanFile `json:"files"`
	Warnings int        `json:"warnings"`
}

type scanView struct {
	pathMode string
	context  bool
}

func newScanCmd() *cobra.Command {
	var (
		format      string
		showContext bool
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List the unused warnings in the log without editing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch format {
			case "pretty", "json":
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
			if err := setupColor(cmd); err != nil {
				return err
			}
			s, err := resolveSettings(cmd)
			if err != nil {
				return err
			}
			warnings, err := warnlog.ParseFile(s.LogPath)
			if err != nil {
				return err
			}
			if format == "json" {
				return renderScanJSON(cmd.OutOrStdout(), s.LogPath, warnings)
			}
			renderScanPretty(cmd.OutOrStdout(), warnings, scanView{pathMode: s.PathMode, context: showContext})
			return nil
		},
	}
	cmd.Flags().String("log", warnlog.DefaultPath, "compiler warning log to read")
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	cmd.Flags().BoolVar(&showContext, "context", false, "print the flagged source line under each warning")
	return cmd
}

func renderScanPretty(out io.Writer, warnings diag.ByFile, view scanView) {
	pathColor := color.New(color.Bold)
	dim := color.New(color.Faint)
	kindColor := map[diag.Kind]*color.Color{
		diag.KindParameter: color.New(color.FgCyan),
		diag.KindVariable:  color.New(color.FgMagenta),
	}

	for _, path := range warnings.Paths() {
		ws := warnings[path]
		posWidth := 0
		for _, w := range ws {
			posWidth = max(posWidth, runewidth.StringWidth(position(w)))
		}
		pathColor.Fprintln(out, source.DisplayPath(path, view.pathMode, ""))

		var file *source.File
		if view.context {
			f, err := source.Load(path)
			if err != nil {
				dim.Fprintf(out, "  (%v)\n", err)
			}
			file = f
		}
		for _, w := range ws {
			pos := position(w)
			pad := strings.Repeat(" ", posWidth-runewidth.StringWidth(pos))
			kind := kindColor[w.Kind].Sprintf("%-9s", w.Kind)
			fmt.Fprintf(out, "  %s%s  %s %s\n", pos, pad, kind, w.Name)
			if file != nil {
				dim.Fprintf(out, "    | %s\n", contextLine(file, w.Line))
			}
		}
	}
	fmt.Fprintf(out, "%d warnings in %d files\n", warnings.Total(), len(warnings))
}

func contextLine(f *source.File, line uint32) string {
	if line > f.LineCount() {
		return fmt.Sprintf("(past the last line, %d)", f.LineCount())
	}
	return strings.TrimSpace(f.GetLine(line))
}

func position(w diag.Warning) string {
	return fmt.Sprintf("%d:%d", w.Line, w.Col)
}

func renderScanJSON(out io.Writer, logPath string, warnings diag.ByFile) error {
	payload := scanPayload{
		Log:      logPath,
		Files:    make([]scanFile, 0, len(warnings)),
		Warnings: warnings.Total(),
	}
	for _, path := range warnings.Paths() {
		payload.Files = append(payload.Files, scanFile{Path: path, Warnings: warnings[path]})
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
