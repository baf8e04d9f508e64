package service

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/templui/goaltracker/internal/markdown"
	"github.com/templui/goaltracker/internal/model"
)

//go:embed catalog/*.md
var catalogFS embed.FS

type catalogEntry struct {
	Name       string `yaml:"name"`
	Condition  string `yaml:"condition"`
	Repeatable bool   `yaml:"repeatable"`
	Order      int    `yaml:"order"`
}

// DefaultTemplates returns the starter achievement catalog in seeding order.
func DefaultTemplates() ([]*model.AchievementTemplate, error) {
	return loadCatalog(catalogFS, "catalog")
}

func loadCatalog(fsys fs.FS, dir string) ([]*model.AchievementTemplate, error) {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	parser := markdown.NewParser()
	type ordered struct {
		order    int
		template *model.AchievementTemplate
	}
	var entries []ordered

	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".md") {
			continue
		}

		source, err := fs.ReadFile(fsys, dir+"/"+f.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name(), err)
		}

		var meta catalogEntry
		description, err := parser.Document(source, &meta)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f.Name(), err)
		}
		if meta.Name == "" || meta.Condition == "" {
			return nil, fmt.Errorf("%s: name and condition are required", f.Name())
		}

		entries = append(entries, ordered{
			order: meta.Order,
			template: &model.AchievementTemplate{
				Name:        meta.Name,
				Description: description,
				Condition:   meta.Condition,
				Repeatable:  meta.Repeatable,
			},
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].order < entries[j].order
	})

	templates := make([]*model.AchievementTemplate, len(entries))
	for i, e := range entries {
		templates[i] = e.template
	}
	return templates, nil
}
