// Package ai rewrites hero insight messages with Gemini so pro-tier
// clients see coach-voiced copy instead of the engine's template text.
// Callers must treat a failure here as cosmetic and fall back to the
// template message.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/coachpulse/server/pkg/domain/progress"
)

const phrasingModel = "gemini-2.0-flash"

type HeroPhraser struct {
	APIKey string
}

// RephraseHero returns a rephrased message for the hero insight. The title
// and underlying numbers are never changed, only the message copy.
func (p *HeroPhraser) RephraseHero(ctx context.Context, hero *progress.Insight, streak int) (string, error) {
	if p.APIKey == "" {
		return "", fmt.Errorf("gemini api key not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.APIKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(phrasingModel)
	model.SetTemperature(0.7)
	model.SetTopP(0.9)
	model.SetMaxOutputTokens(120)

	resp, err := model.GenerateContent(ctx, genai.Text(buildHeroPrompt(hero, streak)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	rawOutput := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			rawOutput += string(text)
		}
	}

	return cleanOutput(rawOutput), nil
}

func buildHeroPrompt(hero *progress.Insight, streak int) string {
	var facts []string
	facts = append(facts, fmt.Sprintf("Insight type: %s", hero.Kind))
	if hero.Exercise != "" {
		facts = append(facts, fmt.Sprintf("Exercise: %s", hero.Exercise))
	}
	facts = append(facts, fmt.Sprintf("Template message: %s", hero.Message))
	if streak > 0 {
		facts = append(facts, fmt.Sprintf("Current streak: %d consecutive training days", streak))
	}

	return fmt.Sprintf(`You are a personal trainer writing a short note to your client inside a coaching app.

Facts about this week:
%s

Rewrite the template message in an encouraging coach's voice.
- Keep every number and exercise name exactly as given
- One or two sentences, max 160 characters
- No hashtags, no markdown
Respond with ONLY the rewritten message, nothing else.`, strings.Join(facts, "\n"))
}

func cleanOutput(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "*_`\"")
	// Truncate on rune boundaries; the copy often carries emoji.
	if runes := []rune(s); len(runes) > 200 {
		s = string(runes[:197]) + "..."
	}
	return s
}
