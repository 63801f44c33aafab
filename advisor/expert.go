package advisor

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

// Expert represent a chat with a specialist model.
type Expert struct {
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	ModelName   string                       `json:"model_name"`
	Config      *genai.GenerateContentConfig `json:"config"`
	Library     Library
	chat        *genai.Chat
}

// Start opens the expert's chat session.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return fmt.Errorf("start %s: %w", e.Name, err)
	}
	e.chat = chat
	return nil
}

// maxCalls bounds the function calls resolved for a single question.
const maxCalls = 8

// Ask sends parts to the expert and resolves its function calls until it
// answers with text.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (string, error) {
	if e.chat == nil {
		return "", fmt.Errorf("expert %s is not started", e.Name)
	}
	for range maxCalls {
		resp, err := e.chat.Send(ctx, parts...)
		if err != nil {
			return "", err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return "", fmt.Errorf("no response from expert %s", e.Name)
		}

		var text []string
		parts = nil
		for _, p := range resp.Candidates[0].Content.Parts {
			switch {
			case p.FunctionCall != nil && e.Library == nil:
				return "", fmt.Errorf("expert %s doesn't know how to make function calls", e.Name)
			case p.FunctionCall != nil:
				// errors are reported to the model in the response.
				parts = append(parts, &genai.Part{FunctionResponse: e.Library(ctx, p.FunctionCall)})
			case p.Text != "":
				text = append(text, p.Text)
			}
		}
		if len(parts) == 0 {
			if len(text) == 0 {
				return "", fmt.Errorf("no response from expert %s", e.Name)
			}
			return strings.Join(text, ""), nil
		}
	}
	return "", fmt.Errorf("expert %s made more than %d function calls", e.Name, maxCalls)
}

// Declaration returns the function declaration to ask this expert.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {
					Type:        genai.TypeString,
					Description: "The question to ask the expert.",
				},
			},
			Required: []string{"question"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "Expert's response.",
		},
	}
}

// Call asks this expert the question found in args.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	question, ok := args["question"].(string)
	if !ok {
		return errorResponse(id, e.Name, fmt.Errorf("invalid question type got %T, expected string", args["question"]))
	}

	r, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return errorResponse(id, e.Name, fmt.Errorf("something went wrong while calling the expert: %w", err))
	}
	log.Printf("Expert %q: \n        %q\n        %q", e.Name, question, r)
	return outputResponse(id, e.Name, r)
}
