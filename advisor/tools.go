package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/etnz/household"
	"github.com/etnz/household/date"
	"github.com/etnz/household/docs"
	"github.com/etnz/household/renderer"
	"golang.org/x/text/language"
	"google.golang.org/genai"
)

// Func implements a simple Function.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// ToolOptions configures how the tools render amounts.
type ToolOptions struct {
	Language language.Tag
	Currency string
}

// Tools returns the functions reading the current snapshot of store.
func Tools(store *household.Store, opts ToolOptions) []*Func {
	return []*Func{dashboardTool(store, opts), queryTool(store)}
}

func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string as expected but %T", name, v)
	}
	return strings.TrimSpace(s), nil
}

// topic returns a documentation topic, empty if it is missing.
func topic(name string) string {
	t, err := docs.Read(name)
	if err != nil {
		return ""
	}
	return t
}

const dashboardName = "Dashboard"

func dashboardTool(store *household.Store, opts ToolOptions) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        dashboardName,
			Description: "Dashboard renders the household dashboard, or one of its sections, as markdown.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"section": {
						Type:        genai.TypeString,
						Description: "Optional section to render.",
						Enum: []string{
							renderer.SectionAccounts, renderer.SectionBudgets, renderer.SectionExpenses,
							renderer.SectionDebts, renderer.SectionLoans, renderer.SectionProperties,
							renderer.SectionPortfolio,
						},
					},
					"period": {
						Type:        genai.TypeString,
						Description: "Optional period of the expenses and spending shown.\n\n" + topic("dates"),
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown document.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			section, err := stringArg(args, "section")
			if err != nil {
				return errorResponse(id, dashboardName, err)
			}
			period, err := stringArg(args, "period")
			if err != nil {
				return errorResponse(id, dashboardName, err)
			}
			o := renderer.Options{Language: opts.Language, Currency: opts.Currency}
			if period != "" {
				if o.Period, err = date.ParseRange(period); err != nil {
					return errorResponse(id, dashboardName, err)
				}
			}
			s := store.Snapshot()
			if section == "" {
				return outputResponse(id, dashboardName, renderer.Dashboard(s, o))
			}
			md, err := renderer.Section(s, section, o)
			if err != nil {
				return errorResponse(id, dashboardName, err)
			}
			return outputResponse(id, dashboardName, md)
		},
	}
}

const queryName = "Query"

func queryTool(store *household.Store) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        queryName,
			Description: "Query evaluates a JSONPath expression on the household records.\n\n" + topic("query"),
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"path": {
						Type:        genai.TypeString,
						Description: `A JSONPath expression, for instance $.expenses[?(@.category=="Food")].amount`,
					},
				},
				Required: []string{"path"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The JSON encoded result.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			path, err := stringArg(args, "path")
			if err != nil {
				return errorResponse(id, queryName, err)
			}
			if path == "" {
				return errorResponse(id, queryName, fmt.Errorf("argument %q is required", "path"))
			}
			v, err := household.Query(store.Snapshot(), path)
			if err != nil {
				return errorResponse(id, queryName, err)
			}
			out, err := json.Marshal(v)
			if err != nil {
				return errorResponse(id, queryName, err)
			}
			return outputResponse(id, queryName, string(out))
		},
	}
}
