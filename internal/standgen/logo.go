package standgen

import (
	"context"
	"encoding/json"
	"path"
	"strings"

	"github.com/komolbek/expostandai/internal/domain"
	"github.com/komolbek/expostandai/internal/infra"
)

const visionInstruction = `Analyze this company logo image and respond with ONLY a JSON object, no other text:
{
  "description": "detailed visual description of the logo suitable for reproducing it in a 3D render",
  "colors": ["dominant color names in order of prominence"],
  "style": "short style descriptor, e.g. modern minimalist",
  "hasText": true or false,
  "textContent": "exact text visible in the logo, only if hasText is true"
}`

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// FindLogoFile picks the first uploaded brand file that looks like an image,
// by declared mime type or filename extension.
func FindLogoFile(files []domain.UploadedFile) (domain.UploadedFile, bool) {
	for _, f := range files {
		if strings.HasPrefix(strings.ToLower(f.Type), "image/") {
			return f, true
		}
		if imageExtensions[strings.ToLower(path.Ext(f.Name))] {
			return f, true
		}
	}
	return domain.UploadedFile{}, false
}

// LogoAnalyzer asks a vision model to describe an uploaded logo.
type LogoAnalyzer struct {
	vision  VisionClient
	baseURL string
	logger  infra.Logger
}

func NewLogoAnalyzer(vision VisionClient, publicBaseURL string, logger infra.Logger) *LogoAnalyzer {
	return &LogoAnalyzer{
		vision:  vision,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:  logger,
	}
}

// Analyze describes the logo via one vision call. The second return value is
// false when the call or parsing failed and the generic fallback analysis is
// returned instead. Analyze never returns an error so a broken logo cannot
// abort a generation batch.
func (a *LogoAnalyzer) Analyze(ctx context.Context, file domain.UploadedFile) (LogoAnalysis, bool) {
	imageURL := a.resolveURL(file.URL)
	reply, err := a.vision.DescribeImage(ctx, imageURL, visionInstruction)
	if err != nil {
		a.logger.Warn().Err(err).Str("file", file.Name).Msg("logo vision call failed, using generic analysis")
		return fallbackAnalysis(), false
	}
	analysis, ok := parseAnalysisReply(reply)
	if !ok {
		a.logger.Warn().Str("file", file.Name).Msg("logo vision reply had no usable JSON, using generic analysis")
		return fallbackAnalysis(), false
	}
	return analysis, true
}

func (a *LogoAnalyzer) resolveURL(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if a.baseURL == "" {
		return raw
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return a.baseURL + raw
}

func parseAnalysisReply(reply string) (LogoAnalysis, bool) {
	fragment := extractJSONObject(reply)
	if fragment == "" {
		return LogoAnalysis{}, false
	}
	var analysis LogoAnalysis
	if err := json.Unmarshal([]byte(fragment), &analysis); err != nil {
		return LogoAnalysis{}, false
	}
	if strings.TrimSpace(analysis.Description) == "" {
		return LogoAnalysis{}, false
	}
	if analysis.Colors == nil {
		analysis.Colors = []string{}
	}
	if !analysis.HasText {
		analysis.TextContent = ""
	}
	return analysis, true
}

func fallbackAnalysis() LogoAnalysis {
	return LogoAnalysis{
		Description: "company logo",
		Colors:      []string{},
		Style:       "corporate",
		HasText:     false,
	}
}

// extractJSONObject pulls the first top-level JSON object out of a model
// reply that may wrap it in prose or a code fence.
func extractJSONObject(raw string) string {
	text := trimCodeFence(raw)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return ""
	}
	return strings.TrimSpace(text[start : end+1])
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
