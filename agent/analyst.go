// Package agent provides a Gemini-backed analyst that reads the portfolio
// and the news through function calls and produces market insights.
package agent

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// Analyst represents a chat with the portfolio analyst.
type Analyst struct {
	Name      string
	ModelName string
	Config    *genai.GenerateContentConfig
	Library   Library
	chat      *genai.Chat
}

// Start creates the underlying chat session.
func (a *Analyst) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, a.ModelName, a.Config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

// Ask sends parts to the analyst, transparently serving any function call
// it makes until a text response comes back.
func (a *Analyst) Ask(ctx context.Context, parts ...*genai.Part) (string, error) {
	resp, err := a.chat.Send(ctx, parts...)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from %s", a.Name)
	}
	part0 := resp.Candidates[0].Content.Parts[0]
	if part0.FunctionCall != nil {
		if a.Library == nil {
			return "", fmt.Errorf("%s doesn't know how to make function calls", a.Name)
		}
		log.Printf("%s calls %s", a.Name, part0.FunctionCall.Name)
		fresp := a.Library(ctx, part0.FunctionCall)

		// Feed the tool response back until the analyst produces text.
		return a.Ask(ctx, &genai.Part{FunctionResponse: fresp})
	}
	return part0.Text, nil
}
