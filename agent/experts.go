package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/etnz/capital"
	"github.com/etnz/capital/docs"
	"github.com/etnz/capital/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			The user trades USDT against cordobas (C$) and dollars on a P2P exchange and keeps
			a ledger of their accounts, orders, expenses and movements.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and keep context of your previous questions.

			Devise a plan of questions to ask to each expert and come up with the best response
			to the user's request. Answer in markdown.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst returns an expert of the P2P market, grounded with Google Search.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is a market analyst, aware of the USDT P2P market in Nicaragua,
		of the official and parallel exchange rates of the cordoba and of the exchanges fees.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an analyst of the P2P stablecoin market. You leverage Google Search to
			ground your assertions: current P2P USDT prices in cordobas and dollars,
			exchange commissions and the cordoba exchange rates.
			`}}},
		},
	}
}

// NewBookkeeper returns the expert reading the user's ledger. snapshot is
// called on every question so that answers follow the ledger changes.
func NewBookkeeper(snapshot func() capital.Snapshot) *Expert {
	lib := Bookkeeping(snapshot)
	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. It reads the user's ledger and computes balances,
		capital, the weighted average USDT cost, daily reports and monthly summaries.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the bookkeeper of the user's ledger.
				Use the available tools to get the figures you are asked for, never guess them.
				Here is how the ledger values the capital:

				` + must(docs.GetTopic("rates"))}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Bookkeeping returns the functions rendering the ledger in markdown.
func Bookkeeping(snapshot func() capital.Snapshot) []Function {
	view := func(name, description string, render func(capital.Snapshot, map[string]any) (string, error), params map[string]*genai.Schema) Function {
		decl := &genai.FunctionDeclaration{
			Name:        name,
			Description: description,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown document.",
			},
		}
		if params != nil {
			decl.Parameters = &genai.Schema{Type: genai.TypeObject, Properties: params}
		}
		return &Func{
			Decl: decl,
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				out, err := render(snapshot(), args)
				if err != nil {
					return failure(id, name, err)
				}
				return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"output": out}}
			},
		}
	}
	static := func(f func(capital.Snapshot) string) func(capital.Snapshot, map[string]any) (string, error) {
		return func(s capital.Snapshot, _ map[string]any) (string, error) { return f(s), nil }
	}

	return []Function{
		view("Capital", "Total capital in cordobas and dollars, the rates in use and the balance of every account.",
			static(renderer.CapitalMarkdown), nil),
		view("Orders", "Every USDT buy and sell order, newest first, canceled ones included.",
			static(func(s capital.Snapshot) string { return renderer.OrdersMarkdown(s, false) }), nil),
		view("Movements", "The history of deposits, withdrawals and transfers, newest first.",
			static(renderer.MovementsMarkdown), nil),
		view("Reports", "The saved daily reports with their opening and closing capital.",
			static(renderer.ReportsMarkdown), nil),
		view("Monthly", "The summary of a calendar month: capital gain, mean daily change and expenses.",
			monthly, map[string]*genai.Schema{
				"month": {
					Type:        genai.TypeString,
					Description: "The month formatted as YYYY-MM. The current month is the default.",
				},
			}),
	}
}

func monthly(s capital.Snapshot, args map[string]any) (string, error) {
	t := time.Now()
	if arg, ok := args["month"]; ok {
		str, ok := arg.(string)
		if !ok {
			return "", fmt.Errorf("argument 'month' is not a string as expected but %T", arg)
		}
		var err error
		if t, err = time.Parse("2006-01", str); err != nil {
			return "", fmt.Errorf("argument 'month' must be formatted as YYYY-MM, got %q", str)
		}
	}
	return renderer.MonthlyMarkdown(s.MonthlySummary(t.Year(), t.Month())), nil
}
