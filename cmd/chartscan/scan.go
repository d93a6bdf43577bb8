package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"chart-color-inspector/internal/classifier"
	"chart-color-inspector/internal/config"
	"chart-color-inspector/internal/logger"
	"chart-color-inspector/internal/observer"
	"chart-color-inspector/internal/report"
	"chart-color-inspector/internal/repository"
	"chart-color-inspector/internal/service"
	"chart-color-inspector/internal/storage"
	"chart-color-inspector/internal/visualizer"
	"chart-color-inspector/pkg/models"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [image]",
		Short: "Classify chart screenshot pixels into color categories",
		Long: `Scan classifies every pixel of a chart screenshot against hand-tuned
color threshold rules and reports the most frequent matching colors.

For each requested color it writes a JSON (or Markdown) report and a
side-by-side visualization with matched pixels highlighted, and prints a
console summary.

Examples:
  # Analyze all built-in colors
  chartscan scan screenshot.png

  # Only purple markers, top five colors
  chartscan scan --color purple --top 5 screenshot.png

  # Several colors at once
  chartscan scan --color purple --color blue screenshot.png

  # Custom rule set
  chartscan scan --rules myrules.yaml --color teal screenshot.png

  # Markdown reports, no visualization
  chartscan scan --markdown --no-visualization screenshot.png`,
		Args: cobra.ExactArgs(1),
		RunE: runScanCmd,
	}

	cmd.Flags().StringSliceP("color", "c", nil,
		"Color to detect (repeatable; default: all colors in the rule set)")
	cmd.Flags().IntP("top", "t", 10,
		"Number of top matched colors to report (0 keeps all)")
	cmd.Flags().StringP("rules", "r", "",
		"YAML file with custom color rules (replaces the built-in set)")
	cmd.Flags().StringP("output", "o", "color_analysis_results",
		"Directory for reports and visualizations")
	cmd.Flags().BoolP("markdown", "m", false,
		"Write Markdown reports instead of JSON")
	cmd.Flags().Bool("no-visualization", false,
		"Skip rendering the side-by-side visualization")
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the analysis history database")
	cmd.Flags().String("highlight", "#FFFF00",
		"Highlight color for matched pixels (hex)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger.UseTextOutput(verbose)

	imagePath := args[0]
	colors, _ := cmd.Flags().GetStringSlice("color")
	topN, _ := cmd.Flags().GetInt("top")
	rulesPath, _ := cmd.Flags().GetString("rules")
	outputDir, _ := cmd.Flags().GetString("output")
	useMarkdown, _ := cmd.Flags().GetBool("markdown")
	noVisualization, _ := cmd.Flags().GetBool("no-visualization")
	noHistory, _ := cmd.Flags().GetBool("no-history")
	highlightHex, _ := cmd.Flags().GetString("highlight")

	highlight, err := parseHexColor(highlightHex)
	if err != nil {
		return fmt.Errorf("invalid --highlight value: %w", err)
	}

	// Resolve the active rule set and the requested subset.
	ruleSet := classifier.BuiltinRules()
	if rulesPath != "" {
		ruleSet, err = config.LoadRulesFile(rulesPath)
		if err != nil {
			return err
		}
	}
	rules, err := selectRules(colors, ruleSet)
	if err != nil {
		return err
	}

	svc, closeHistory := buildService(noHistory)
	defer closeHistory()

	opts := service.DefaultAnalyzeOptions()
	opts.TopN = topN
	opts.ComputeMask = !noVisualization
	opts.Rules = rules

	ctx := cmd.Context()
	reports, results, err := svc.AnalyzeAllColors(ctx, imagePath, opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var viz visualizer.Visualizer
	vizOpts := visualizer.DefaultOptions()
	vizOpts.HighlightColor = highlight
	if !noVisualization {
		viz = visualizer.New()
	}

	// The visualizer draws over the original, which the service does not
	// hand back; a local file decode is cheap enough to repeat.
	img, err := storage.NewFileImageLoader().GetImage(ctx, imagePath)
	if err != nil {
		return err
	}

	timestamp := time.Now().Format("20060102_150405")
	console := report.NewConsoleWriter(cmd.OutOrStdout())

	for i, rep := range reports {
		result := results[i]
		outputs := &models.OutputFiles{}

		if viz != nil {
			vizPath := filepath.Join(outputDir, fmt.Sprintf("%s_detection_%s.png", rep.ColorName, timestamp))
			if err := viz.SavePNG(vizPath, img, result, vizOpts); err != nil {
				return err
			}
			outputs.Visualization = vizPath
		}

		if _, err := writeReportFile(outputDir, rep, outputs, timestamp, useMarkdown); err != nil {
			return err
		}

		if _, err := console.Write(rep); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "analyzed %d color(s); results in %s\n", len(reports), outputDir)
	return nil
}

// buildService wires the CLI dependency graph: local files in, optional
// history database, logging observer.
func buildService(noHistory bool) (service.ClassificationService, func()) {
	imageRepo := repository.NewImageRepository(storage.NewFileImageLoader())

	subject := observer.NewSubject()
	subject.Subscribe(observer.NewLoggingObserver())

	var history repository.HistoryRepository
	if !noHistory {
		var err error
		history, err = repository.OpenHistory(config.DefaultHistoryDir())
		if err != nil {
			logger.WithError(err).Warn("History database unavailable, continuing without it")
			history = nil
		}
	}

	svc := service.NewClassificationService(imageRepo, classifier.NewPixelClassifier(), history, subject)
	closeHistory := func() {
		if history != nil {
			history.Close()
		}
	}
	return svc, closeHistory
}

// selectRules filters the active rule set down to the requested colors.
// An empty request keeps the whole set.
func selectRules(names []string, ruleSet []classifier.ColorRule) ([]classifier.ColorRule, error) {
	if len(names) == 0 {
		return ruleSet, nil
	}

	byName := make(map[string]classifier.ColorRule, len(ruleSet))
	available := make([]string, 0, len(ruleSet))
	for _, rule := range ruleSet {
		byName[rule.Name] = rule
		available = append(available, rule.Name)
	}

	selected := make([]classifier.ColorRule, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		rule, ok := byName[name]
		if !ok {
			if suggestion := classifier.SuggestRule(name); suggestion != "" {
				return nil, fmt.Errorf("unknown color %q, did you mean %q?", name, suggestion)
			}
			return nil, fmt.Errorf("unknown color %q (available: %s)", name, strings.Join(available, ", "))
		}
		selected = append(selected, rule)
	}
	return selected, nil
}

// writeReportFile writes one report in the requested format and returns its
// path.
func writeReportFile(outputDir string, rep *models.AnalysisReport, outputs *models.OutputFiles, timestamp string, useMarkdown bool) (string, error) {
	ext := "json"
	if useMarkdown {
		ext = "md"
	}
	path := filepath.Join(outputDir, fmt.Sprintf("%s_analysis_%s.%s", rep.ColorName, timestamp, ext))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	outputs.Report = path
	rep.OutputFiles = outputs

	var w report.Writer
	if useMarkdown {
		w = report.NewMarkdownWriter(f)
	} else {
		w = report.NewJSONWriter(f)
	}
	if _, err := w.Write(rep); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// parseHexColor parses #RRGGBB (the leading # is optional).
func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("want RRGGBB, got %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, err
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
