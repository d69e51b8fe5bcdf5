// Package services – EnhanceService
//
// This file implements prompt enhancement: a short wireframe description is
// rewritten by a text model into a structured, numbered brief. When the
// upstream model is unavailable the service falls back to a deterministic
// local transformation, so a validated prompt is always enhanced one way or
// the other.

package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/apollohq/wireframe-to-code-backend/internal/cache"
	"github.com/apollohq/wireframe-to-code-backend/internal/inference"
)

// TextClient is the narrow inference surface enhancement needs.
type TextClient interface {
	Complete(ctx context.Context, model, system string, parts []inference.Part) (string, error)
}

// EnhanceService rewrites rough prompts into structured ones.
type EnhanceService struct {
	Text  TextClient
	Model string

	// Character bounds applied to both input and output.
	MinChars int
	MaxChars int

	// Cache is optional; nil disables result caching.
	Cache cache.Cache
}

const enhancePadding = "\n\nPlease provide implementation details and consider best practices."

// enhanceSystem keeps the model from prefacing its answer with reasoning.
const enhanceSystem = "You rewrite prompts. Return only the rewritten prompt, with no explanations."

func (s *EnhanceService) instruction(prompt string) string {
	return fmt.Sprintf(`Enhance the following prompt to make it more structured and specific, but keep it BRIEF and CONCISE (between %d-%d characters total):

"%s"

Your enhanced version should:
1. Add 3-4 specific points in a numbered list
2. Use professional but concise language
3. Focus only on the most important aspects
4. Avoid unnecessary details or explanations
5. Ensure the total character count is between %d-%d characters

Return ONLY the enhanced prompt with no explanations or reasoning.`,
		s.MinChars, s.MaxChars, prompt, s.MinChars, s.MaxChars)
}

// Enhance validates the prompt length, asks the text model for a structured
// rewrite, and clamps the result into the configured character window. The
// returned bool reports whether the deterministic local fallback produced
// the result. Once the input validates, Enhance does not fail on upstream
// errors.
func (s *EnhanceService) Enhance(ctx context.Context, prompt string) (string, bool, error) {
	tr := otel.Tracer("services/EnhanceService")
	ctx, span := tr.Start(ctx, "Enhance",
		trace.WithAttributes(attribute.Int("prompt.chars", utf8.RuneCountInString(prompt))),
	)
	defer span.End()

	switch n := utf8.RuneCountInString(prompt); {
	case n < s.MinChars:
		return "", false, ErrPromptTooShort
	case n > s.MaxChars:
		return "", false, ErrPromptTooLong
	}

	key := cache.Key("enhance", s.Model, prompt)
	if s.Cache != nil {
		if v, ok := s.Cache.Get(ctx, key); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return v, false, nil
		}
	}

	out, err := s.Text.Complete(ctx, s.Model, enhanceSystem, []inference.Part{
		inference.TextPart(s.instruction(prompt)),
	})
	if err != nil || strings.TrimSpace(stripReasoning(out)) == "" {
		span.SetAttributes(attribute.Bool("fallback", true))
		return s.clampWindow(s.fallback(prompt)), true, nil
	}

	enhanced := s.clampWindow(strings.TrimSpace(stripReasoning(out)))
	if s.Cache != nil {
		s.Cache.Set(ctx, key, enhanced)
	}
	return enhanced, false, nil
}

// clampWindow truncates to MaxChars and pads below MinChars.
func (s *EnhanceService) clampWindow(text string) string {
	if utf8.RuneCountInString(text) > s.MaxChars {
		text = string([]rune(text)[:s.MaxChars])
	}
	if utf8.RuneCountInString(text) < s.MinChars {
		text += enhancePadding
	}
	return text
}

var reasoningRE = regexp.MustCompile(`(?is)^thinking process:.*?(result:|enhanced prompt:)`)

// stripReasoning drops a leaked chain-of-thought preamble from the model
// output.
func stripReasoning(out string) string {
	return strings.TrimSpace(reasoningRE.ReplaceAllString(out, ""))
}

// Topic keywords recognized by the local fallback, in match priority order.
var fallbackTopics = []string{"website", "app", "dashboard", "stats", "ai", "personal"}

var sentenceStartRE = regexp.MustCompile(`(^\s*\w|[.!?]\s*\w)`)

var sentenceCaser = cases.Upper(language.English)

// capitalizeSentences lowercases the text and re-capitalizes the first
// letter of each sentence.
func capitalizeSentences(text string) string {
	return sentenceStartRE.ReplaceAllStringFunc(strings.ToLower(text), sentenceCaser.String)
}

// fallback deterministically restructures the prompt without any model call:
// normalize casing, detect the dominant topic keyword, and emit a numbered
// feature list for it.
func (s *EnhanceService) fallback(prompt string) string {
	formatted := strings.TrimSpace(capitalizeSentences(prompt))
	lower := strings.ToLower(formatted)

	topic := ""
	for _, t := range fallbackTopics {
		if strings.Contains(lower, t) {
			topic = t
			break
		}
	}

	if topic == "" {
		return fmt.Sprintf("Develop %s with these key features:\n\n"+
			"1. User-friendly interface\n"+
			"2. Core functionality\n"+
			"3. Performance optimization\n"+
			"\nProvide implementation approach.", formatted)
	}

	var points []string
	switch topic {
	case "website":
		points = []string{
			"Responsive design for all devices",
			"Clean, intuitive user interface",
			"Fast loading and performance",
		}
	case "app":
		words := strings.Fields(prompt)
		if len(words) > 5 {
			words = words[:5]
		}
		points = []string{
			"User-friendly mobile interface",
			"Core functionality: " + strings.Join(words, " "),
			"Offline capabilities",
		}
	case "dashboard", "stats":
		points = []string{
			"Key metrics visualization",
			"Data filtering options",
			"Regular data updates",
		}
	case "ai":
		points = []string{
			"AI-powered analysis",
			"Personalized recommendations",
			"Learning capabilities",
		}
	case "personal":
		points = []string{
			"Privacy and security",
			"Customization options",
			"Personal data management",
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a %s with the following features:\n\n", topic)
	for i, p := range points {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, p)
	}
	sb.WriteString("\nInclude design and implementation details.")
	return sb.String()
}
