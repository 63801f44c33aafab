// Package docs holds the hh documentation topics.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.md
var files embed.FS

// Topic is one documentation page.
type Topic struct {
	Name  string // argument of hh topic
	Title string // first heading of the page
}

// Index returns the topics sorted by name. The readme, which introduces
// them, is not a topic.
func Index() ([]Topic, error) {
	pages, err := fs.Glob(files, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []Topic
	for _, page := range pages {
		name := strings.TrimSuffix(page, ".md")
		if name == "readme" {
			continue
		}
		content, err := files.ReadFile(page)
		if err != nil {
			return nil, err
		}
		title, _, _ := strings.Cut(string(content), "\n")
		topics = append(topics, Topic{Name: name, Title: strings.TrimPrefix(title, "# ")})
	}
	return topics, nil
}

// Read returns the named pages one after the other. "*" stands for every
// topic of the Index.
func Read(names ...string) (string, error) {
	var pages []string
	for _, name := range names {
		if name != "*" {
			pages = append(pages, name)
			continue
		}
		topics, err := Index()
		if err != nil {
			return "", err
		}
		for _, t := range topics {
			pages = append(pages, t.Name)
		}
	}

	var b strings.Builder
	for _, name := range pages {
		content, err := files.ReadFile(name + ".md")
		if err != nil {
			return "", fmt.Errorf("unknown topic %q: %w", name, err)
		}
		b.Write(content)
		b.WriteByte('\n')
	}
	return b.String(), nil
}
