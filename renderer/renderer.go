// Package renderer renders household snapshots as markdown documents.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/household"
)

//go:embed templates/*.md
var templates embed.FS

// sectionPartials maps each dashboard section to its partial template.
var sectionPartials = map[string]string{
	SectionAccounts:   "accounts.md",
	SectionBudgets:    "budgets.md",
	SectionExpenses:   "expenses.md",
	SectionDebts:      "debts.md",
	SectionLoans:      "loans.md",
	SectionProperties: "properties.md",
	SectionPortfolio:  "portfolio.md",
}

// Dashboard renders the snapshot as a markdown document: a headline with net
// worth and emergency fund, then one section per record collection.
func Dashboard(s *household.Snapshot, opts Options) string {
	partials := map[string]string{"dashboard_title": "title.md"}
	for name, file := range sectionPartials {
		partials[name] = file
	}
	return renderTemplate("dashboard", "dashboard.md", partials, newDashboard(s, opts))
}

// Section renders a single dashboard section, without the headline.
func Section(s *household.Snapshot, name string, opts Options) (string, error) {
	file, ok := sectionPartials[name]
	if !ok {
		return "", fmt.Errorf("unknown section %q", name)
	}
	opts.Sections = []string{name}
	return renderTemplate(name, file, nil, newDashboard(s, opts)), nil
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, "templates/"+file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
