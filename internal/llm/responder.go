// Package llm provides the Responder gateway used by the day scheduler.
//
// A Responder turns one member message into one advisor reply. The scripted
// advisor team answers deterministically and offline; the langchaingo-backed
// Model generates replies with a configured provider, reusing the team's
// routing and persona prompts.
package llm

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/bedrock"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/elyxlabs/journeytree/internal/config"
)

// TurnContext carries the scheduling context handed to the responder with
// each message.
type TurnContext struct {
	Day    int
	Events []string
}

// Responder answers one member message. It returns the responding advisor's
// name and the reply text.
type Responder interface {
	Respond(ctx context.Context, sender, message string, tc TurnContext) (agent string, reply string, err error)
}

// NewResponder builds the Responder selected by configuration. The scripted
// advisor team is the default and needs no network access.
func NewResponder(ctx context.Context, cfg config.Config) (Responder, error) {
	if cfg.Provider == config.ProviderScripted {
		return NewAdvisorTeam(), nil
	}
	return NewModel(ctx, cfg)
}

// Model wraps a langchaingo LLM for advisor reply generation.
type Model struct {
	llm       llms.Model
	modelName string
	team      *AdvisorTeam
}

// NewModel creates an LLM-backed responder based on configuration.
func NewModel(ctx context.Context, cfg config.Config) (*Model, error) {
	var model llms.Model
	var err error

	switch cfg.Provider {
	case config.ProviderOllama:
		model, err = ollama.New(
			ollama.WithModel(cfg.Model),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	case config.ProviderBedrock:
		awsCfg, awsErr := awsconfig.LoadDefaultConfig(ctx)
		if awsErr != nil {
			return nil, fmt.Errorf("load AWS config: %w", awsErr)
		}
		client := bedrockruntime.NewFromConfig(awsCfg)
		model, err = bedrock.New(
			bedrock.WithClient(client),
			bedrock.WithModel(cfg.BedrockModelID),
		)
		if err != nil {
			return nil, fmt.Errorf("create bedrock model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported responder provider: %s", cfg.Provider)
	}

	return &Model{
		llm:       model,
		modelName: cfg.Model,
		team:      NewAdvisorTeam(),
	}, nil
}

// Respond routes the message to an advisor persona and generates the reply
// with that persona's system prompt.
func (m *Model) Respond(ctx context.Context, sender, message string, tc TurnContext) (string, string, error) {
	persona := m.team.Route(message)

	userPrompt := fmt.Sprintf("Day %d of the journey.", tc.Day)
	if len(tc.Events) > 0 {
		userPrompt += fmt.Sprintf(" Events today: %s.", strings.Join(tc.Events, ", "))
	}
	userPrompt += fmt.Sprintf("\n\n%s writes:\n%s", sender, message)

	reply, err := m.generateWithSystem(ctx, persona.SystemPrompt, userPrompt)
	if err != nil {
		return persona.Name, "", wrapFatalError(fmt.Errorf("generate advisor reply: %w", err))
	}
	return persona.Name, reply, nil
}

// generateWithSystem generates text with a system prompt.
func (m *Model) generateWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
	}

	response, err := m.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}
	return response.Choices[0].Content, nil
}

// Model returns the LLM model name.
func (m *Model) Model() string {
	return m.modelName
}
