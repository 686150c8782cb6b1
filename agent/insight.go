package agent

import (
	"context"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// NewAnalyst builds the portfolio analyst. It reads the holdings and the
// news through function calls, so the model only sees data it asks for.
func NewAnalyst(holdings func() (coinfolio.Holdings, []coinfolio.Inconsistency), news func(ctx context.Context) ([]coinfolio.Article, error)) *Analyst {
	lib := []Function{
		newHoldingsFunc(holdings),
		newNewsFunc(news),
	}
	return &Analyst{
		Name:      "Analyst",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a crypto portfolio analyst. The user holds the assets
				returned by the Holdings tool; always read them first.

				Relate the latest news from the News tool to the user's actual
				positions: what moved, what it means for what they hold, and
				what is worth watching. Quantity, cost basis and unrealized
				gain are in the Holdings table.

				Be concise and factual. You give analysis, never financial
				advice, and you say so when asked for advice.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Insight starts the analyst and asks it for a one-shot reading of the
// portfolio against the current news cycle.
func Insight(ctx context.Context, client *genai.Client, analyst *Analyst) (string, error) {
	if err := analyst.Start(ctx, client); err != nil {
		return "", err
	}
	return analyst.Ask(ctx, &genai.Part{Text: `
		Give me an insight on my portfolio: how it is positioned, and what
		in today's news is relevant to my holdings.
	`})
}

func newHoldingsFunc(holdings func() (coinfolio.Holdings, []coinfolio.Inconsistency)) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Holdings",
			Description: `Holdings returns the user's current portfolio: one row per held
			asset with its symbol, quantity, latest price, value, weighted average cost
			basis, unrealized gain and 24h change, plus the allocation per asset.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted holdings report.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			h, faults := holdings()
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Holdings",
				Response: map[string]any{
					"output": renderer.HoldingMarkdown(coinfolio.Today(), h, faults),
				},
			}
		},
	}
}

func newNewsFunc(news func(ctx context.Context) ([]coinfolio.Article, error)) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "News",
			Description: `News returns the latest crypto market headlines with their sources.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted list of recent articles.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			articles, err := news(ctx)
			if err != nil {
				return &genai.FunctionResponse{
					ID:   id,
					Name: "News",
					Response: map[string]any{
						"error": err.Error(),
					},
				}
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: "News",
				Response: map[string]any{
					"output": renderer.NewsMarkdown(articles),
				},
			}
		},
	}
}
