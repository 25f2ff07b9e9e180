// Package authoring drafts event scripts from a short theme hint with Gemini.
package authoring

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/event-engine/internal/anim"
	"github.com/tatianab/event-engine/internal/audio"
	"github.com/tatianab/event-engine/internal/models"
)

//go:embed prompts/generate_script.txt
var generateScriptPrompt string

// DefaultModel is the Gemini model used when none is given.
const DefaultModel = "gemini-2.5-flash"

type Generator struct {
	client *genai.Client
	model  *genai.GenerativeModel
	parser *models.Parser
}

func NewGenerator(ctx context.Context, apiKey, model string, parser *models.Parser) (*Generator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = DefaultModel
	}
	if parser == nil {
		parser = models.NewParser(nil)
	}
	return &Generator{
		client: client,
		model:  client.GenerativeModel(model),
		parser: parser,
	}, nil
}

func (g *Generator) Close() {
	g.client.Close()
}

// GenerateScript asks the model for a script whose first event is start.
// The raw YAML is returned alongside the loaded script so callers can save
// it; records the parser rejects show up as diagnostics, not errors.
func (g *Generator) GenerateScript(ctx context.Context, hint, start string) (*models.Script, []byte, error) {
	prompt, err := renderPrompt(hint, start)
	if err != nil {
		return nil, nil, err
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, nil, fmt.Errorf("no content returned from Gemini")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, nil, fmt.Errorf("unexpected response type from Gemini")
	}

	raw := []byte(cleanYAML(string(text)))
	script, err := models.LoadBytes(raw, g.parser)
	if err != nil {
		return nil, raw, fmt.Errorf("failed to load generated script: %w", err)
	}
	if _, ok := script.Events[start]; !ok {
		return script, raw, fmt.Errorf("generated script has no %q event", start)
	}
	return script, raw, nil
}

func renderPrompt(hint, start string) (string, error) {
	tmpl, err := template.New("generate_script").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(generateScriptPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	data := struct {
		Hint       string
		StartEvent string
		Tags       []string
		Emotes     []string
		Tracks     []string
		Sounds     []string
	}{
		Hint:       hint,
		StartEvent: start,
		Tags:       models.Tags(),
		Emotes:     anim.EmoteNames(),
		Tracks:     audio.Tracks(),
		Sounds:     audio.Sounds(),
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// cleanYAML strips the Markdown fence models like to wrap output in.
func cleanYAML(text string) string {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```yaml")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s) + "\n"
}
