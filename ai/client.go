// Package ai wraps the OpenAI SDK behind the four collaborator contracts the
// assistant needs: text completion, vision analysis, structured JSON
// extraction and image transcription. Every call runs under its own timeout
// so a stalled upstream can never hang a request.
package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultChatModel   = "gpt-4o-mini"
	defaultVisionModel = "gpt-4o"
	defaultCallTimeout = 60 * time.Second

	transcriptionPrompt = "Transcribe this medical document text exactly as it appears. " +
		"If it is handwriting, do your best to transcribe it."
)

type Client struct {
	api         *openai.Client
	chatModel   string
	visionModel string
	timeout     time.Duration
}

// NewClient reads OPENAI_API_KEY, CHAT_MODEL and VISION_MODEL from the
// environment.
func NewClient() *Client {
	chatModel := os.Getenv("CHAT_MODEL")
	if chatModel == "" {
		chatModel = defaultChatModel
	}
	visionModel := os.Getenv("VISION_MODEL")
	if visionModel == "" {
		visionModel = defaultVisionModel
	}
	return &Client{
		api:         openai.NewClient(os.Getenv("OPENAI_API_KEY")),
		chatModel:   chatModel,
		visionModel: visionModel,
		timeout:     defaultCallTimeout,
	}
}

// Complete sends a system prompt plus user text to the chat model and
// returns the completion.
func (c *Client) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userText},
		},
	})
	if err != nil {
		return "", err
	}
	return firstChoice(resp)
}

// AnalyzeImage sends a prompt plus a JPEG image to the vision model.
func (c *Client) AnalyzeImage(ctx context.Context, prompt string, jpeg []byte) (string, error) {
	return c.visionCall(ctx, prompt, jpeg)
}

// TranscribeImage returns the verbatim transcript of a document image.
func (c *Client) TranscribeImage(ctx context.Context, jpeg []byte) (string, error) {
	return c.visionCall(ctx, transcriptionPrompt, jpeg)
}

func (c *Client) visionCall(ctx context.Context, prompt string, jpeg []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpeg)
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.visionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
					},
				},
			},
		},
	})
	if err != nil {
		return "", err
	}
	return firstChoice(resp)
}

// ExtractJSON sends extraction instructions plus source text and asks the
// model for a JSON object response. The returned payload may still be
// malformed; callers validate before parsing.
func (c *Client) ExtractJSON(ctx context.Context, instructions, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instructions},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", err
	}
	return firstChoice(resp)
}

func firstChoice(resp openai.ChatCompletionResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
