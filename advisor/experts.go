package advisor

import (
	"github.com/etnz/household"
	"google.golang.org/genai"
)

func instruction(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

// newFacilitator creates the expert talking to the user.
func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and keep context of your previous questions.

			The user is here to understand their household finances: accounts, budgets, expenses,
			debts, loans, properties and investments. Devise a plan of questions to ask to each
			expert and come up with the best response to the user's request, formatted in markdown.
			`),
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher creates an expert grounded on Google Search, for questions
// about markets, rates and institutions.
func NewResearcher(model string) *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is a financial researcher, aware of financial products, interest rates,
		markets and institutions. Ask the Researcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are an expert in personal finance. You leverage Google Search to ground
			your assertions, and you relate the latest news to the user's request.
			`),
		},
	}
}

// NewBookkeeper creates an expert reading the household records of store.
func NewBookkeeper(model string, store *household.Store, opts ToolOptions) *Expert {
	lib := Tools(store, opts)
	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper, in charge of the user's household records.
		Ask them about balances, budgets, spending, debts, loans, properties, investments and net worth.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
			You are the bookkeeper of the user's household. Use the Tools to read the records:
			  - Dashboard renders the whole dashboard or one of its sections in markdown
			  - Query evaluates a JSONPath expression on the records

			Other experts might ask you approximate questions, figure out what they meant.

			` + topic("records")),
		},
		Library: NewLibrary(lib),
	}
}
