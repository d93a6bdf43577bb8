package service

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/ericpauley/go-quantize/quantize"

	"chart-color-inspector/internal/classifier"
	apperrors "chart-color-inspector/internal/errors"
	"chart-color-inspector/internal/logger"
	"chart-color-inspector/internal/observer"
	"chart-color-inspector/internal/repository"
	"chart-color-inspector/pkg/models"
	"chart-color-inspector/pkg/validation"
)

// ClassificationService orchestrates a full analysis: fetch the image, run
// the rule, build the report, persist history and notify observers.
type ClassificationService interface {
	// AnalyzeColor classifies the image against one named color rule.
	AnalyzeColor(ctx context.Context, ref string, colorName string, opts AnalyzeOptions) (*models.AnalysisReport, *classifier.Result, error)

	// AnalyzeAllColors classifies the image against every rule in the
	// active set.
	AnalyzeAllColors(ctx context.Context, ref string, opts AnalyzeOptions) ([]*models.AnalysisReport, []*classifier.Result, error)

	// Rules returns the active rule set.
	Rules(opts AnalyzeOptions) []classifier.ColorRule
}

// AnalyzeOptions configures one analysis run.
type AnalyzeOptions struct {
	// TopN limits the ranked color list. <= 0 keeps all entries.
	TopN int

	// Rules overrides the built-in rule set (loaded from a YAML file).
	Rules []classifier.ColorRule

	// ComputeMask is needed when a visualization will be rendered.
	ComputeMask bool

	// IncludePalette adds the overall image palette to the report.
	IncludePalette bool
	// PaletteSize is the number of palette entries (default 8).
	PaletteSize int
}

// DefaultAnalyzeOptions returns the default analysis options.
func DefaultAnalyzeOptions() AnalyzeOptions {
	return AnalyzeOptions{
		TopN:           10,
		ComputeMask:    true,
		IncludePalette: true,
		PaletteSize:    8,
	}
}

type classificationService struct {
	imageRepo  repository.ImageRepository
	classifier classifier.PixelClassifier
	history    repository.HistoryRepository // nil disables history
	subject    observer.Subject
	validator  *validation.RuleValidator
}

// NewClassificationService creates a classification service. history may be
// nil to disable persistence; subject may be nil to disable events.
func NewClassificationService(
	imageRepo repository.ImageRepository,
	pixelClassifier classifier.PixelClassifier,
	history repository.HistoryRepository,
	subject observer.Subject,
) ClassificationService {
	if subject == nil {
		subject = observer.NewSubject()
	}
	return &classificationService{
		imageRepo:  imageRepo,
		classifier: pixelClassifier,
		history:    history,
		subject:    subject,
		validator:  validation.NewRuleValidator(),
	}
}

// Rules returns the active rule set for the given options.
func (s *classificationService) Rules(opts AnalyzeOptions) []classifier.ColorRule {
	if len(opts.Rules) > 0 {
		return opts.Rules
	}
	return classifier.BuiltinRules()
}

func (s *classificationService) AnalyzeColor(ctx context.Context, ref string, colorName string, opts AnalyzeOptions) (*models.AnalysisReport, *classifier.Result, error) {
	rule, err := s.resolveRule(colorName, opts)
	if err != nil {
		return nil, nil, err
	}

	img, err := s.fetchImage(ctx, ref)
	if err != nil {
		return nil, nil, err
	}

	report, result, err := s.analyze(ctx, ref, img, rule, opts)
	if err != nil {
		return nil, nil, err
	}
	return report, result, nil
}

func (s *classificationService) AnalyzeAllColors(ctx context.Context, ref string, opts AnalyzeOptions) ([]*models.AnalysisReport, []*classifier.Result, error) {
	rules := s.Rules(opts)
	if issues := s.validator.ValidateRules(rules); validation.HasErrors(issues) {
		return nil, nil, apperrors.NewValidationError(
			fmt.Sprintf("invalid rule set: %s", strings.Join(validation.IssueMessages(issues), "; ")), nil)
	}

	img, err := s.fetchImage(ctx, ref)
	if err != nil {
		return nil, nil, err
	}

	s.notify(ctx, observer.ClassificationEvent{
		EventType: observer.ClassificationStarted,
		Timestamp: time.Now(),
		ImageRef:  ref,
		ColorName: "all",
	})

	results, err := s.classifier.ClassifyAll(ctx, img, rules, s.classifyOptions(opts))
	if err != nil {
		s.notifyFailure(ctx, ref, "all", err)
		return nil, nil, apperrors.NewProcessingError("classification failed", err)
	}

	// Shared per-image facts are computed once, not once per rule.
	uniqueColors := classifier.CountUniqueColors(img)
	palette := s.palette(img, opts)

	reports := make([]*models.AnalysisReport, 0, len(results))
	for _, result := range results {
		report := buildReport(ref, result, uniqueColors, palette)
		s.saveHistory(ctx, report)
		reports = append(reports, report)
		s.notifySuccess(ctx, ref, result)
	}
	return reports, results, nil
}

// analyze runs one rule over an already fetched image.
func (s *classificationService) analyze(ctx context.Context, ref string, img image.Image, rule classifier.ColorRule, opts AnalyzeOptions) (*models.AnalysisReport, *classifier.Result, error) {
	s.notify(ctx, observer.ClassificationEvent{
		EventType: observer.ClassificationStarted,
		Timestamp: time.Now(),
		ImageRef:  ref,
		ColorName: rule.Name,
	})

	result := s.classifier.Classify(img, rule, s.classifyOptions(opts))

	report := buildReport(ref, result, classifier.CountUniqueColors(img), s.palette(img, opts))
	s.saveHistory(ctx, report)
	s.notifySuccess(ctx, ref, result)
	return report, result, nil
}

func (s *classificationService) classifyOptions(opts AnalyzeOptions) classifier.ClassifyOptions {
	classifyOpts := classifier.DefaultClassifyOptions()
	classifyOpts.TopN = opts.TopN
	classifyOpts.ComputeMask = opts.ComputeMask
	return classifyOpts
}

// resolveRule finds the named rule in the active set, suggesting the
// closest known name on a miss.
func (s *classificationService) resolveRule(colorName string, opts AnalyzeOptions) (classifier.ColorRule, error) {
	name := strings.ToLower(strings.TrimSpace(colorName))

	if len(opts.Rules) > 0 {
		if issues := s.validator.ValidateRules(opts.Rules); validation.HasErrors(issues) {
			return classifier.ColorRule{}, apperrors.NewValidationError(
				fmt.Sprintf("invalid rule set: %s", strings.Join(validation.IssueMessages(issues), "; ")), nil)
		}
		for _, rule := range opts.Rules {
			if rule.Name == name {
				return rule, nil
			}
		}
		return classifier.ColorRule{}, apperrors.NewValidationError(
			fmt.Sprintf("unknown color %q in rule set", colorName), nil)
	}

	rule, ok := classifier.RuleByName(name)
	if !ok {
		msg := fmt.Sprintf("unknown color %q (available: %s)", colorName, strings.Join(classifier.RuleNames(), ", "))
		if suggestion := classifier.SuggestRule(name); suggestion != "" {
			msg = fmt.Sprintf("unknown color %q, did you mean %q?", colorName, suggestion)
		}
		return classifier.ColorRule{}, apperrors.NewValidationError(msg, nil)
	}
	return rule, nil
}

func (s *classificationService) fetchImage(ctx context.Context, ref string) (image.Image, error) {
	if err := s.imageRepo.ValidateRef(ref); err != nil {
		return nil, apperrors.NewValidationError("invalid image reference", err)
	}
	img, err := s.imageRepo.FetchImage(ctx, ref)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to fetch image", err)
	}
	return img, nil
}

func (s *classificationService) palette(img image.Image, opts AnalyzeOptions) []string {
	if !opts.IncludePalette {
		return nil
	}
	size := opts.PaletteSize
	if size <= 0 {
		size = 8
	}
	q := quantize.MedianCutQuantizer{}
	pal := q.Quantize(make([]color.Color, 0, size), img)

	hexes := make([]string, 0, len(pal))
	for _, c := range pal {
		r, g, b, _ := c.RGBA()
		hexes = append(hexes, fmt.Sprintf("#%02X%02X%02X", uint8(r>>8), uint8(g>>8), uint8(b>>8)))
	}
	return hexes
}

func (s *classificationService) saveHistory(ctx context.Context, report *models.AnalysisReport) {
	if s.history == nil {
		return
	}
	if err := s.history.SaveAnalysis(ctx, report); err != nil {
		// History is convenience, not correctness; the analysis stands.
		logger.WithError(err).Warn("Failed to save analysis history")
	}
}

func (s *classificationService) notify(ctx context.Context, event observer.ClassificationEvent) {
	s.subject.NotifyObservers(ctx, event)
}

func (s *classificationService) notifySuccess(ctx context.Context, ref string, result *classifier.Result) {
	s.notify(ctx, observer.ClassificationEvent{
		EventType:      observer.ClassificationCompleted,
		Timestamp:      time.Now(),
		ImageRef:       ref,
		ColorName:      result.Rule.Name,
		TotalMatched:   result.TotalMatched,
		ProcessingTime: time.Duration(result.ProcessingTimeSec * float64(time.Second)),
		Success:        true,
	})
}

func (s *classificationService) notifyFailure(ctx context.Context, ref string, colorName string, err error) {
	s.notify(ctx, observer.ClassificationEvent{
		EventType:    observer.ClassificationFailed,
		Timestamp:    time.Now(),
		ImageRef:     ref,
		ColorName:    colorName,
		ErrorMessage: err.Error(),
	})
}

// buildReport converts a classifier result into the serializable report.
func buildReport(ref string, result *classifier.Result, uniqueColors int, palette []string) *models.AnalysisReport {
	top := make([]models.TopColor, 0, len(result.Top))
	for _, c := range result.Top {
		top = append(top, models.TopColor{
			R:          c.Pixel.R,
			G:          c.Pixel.G,
			B:          c.Pixel.B,
			Count:      c.Count,
			Percentage: c.Percentage,
		})
	}

	report := &models.AnalysisReport{
		AnalysisInfo: models.AnalysisInfo{
			Timestamp:         result.Timestamp,
			ImagePath:         ref,
			Width:             result.Width,
			Height:            result.Height,
			TotalPixels:       result.Width * result.Height,
			UniqueColors:      uniqueColors,
			ProcessingTimeSec: result.ProcessingTimeSec,
		},
		ColorName:     result.Rule.Name,
		Description:   result.Rule.Description,
		RuleSummary:   result.Rule.Summary(),
		TotalMatched:  result.TotalMatched,
		Percentage:    result.Percentage,
		TopColors:     top,
		MatchedColors: result.MatchedColors,
		Palette:       palette,
	}

	if result.ChannelStats != nil {
		report.ChannelStats = &models.ChannelStats{
			MeanR: result.ChannelStats.MeanR,
			MeanG: result.ChannelStats.MeanG,
			MeanB: result.ChannelStats.MeanB,
			StdR:  result.ChannelStats.StdR,
			StdG:  result.ChannelStats.StdG,
			StdB:  result.ChannelStats.StdB,
		}
	}
	return report
}
