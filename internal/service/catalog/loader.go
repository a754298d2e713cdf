package catalog

import (
	"EnrollHub/entity"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultCatalog []byte

// Load reads the catalog from path, or the built-in catalog when path is empty.
func Load(path string) (*entity.Catalog, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
	}
	return Parse(data)
}

func Parse(data []byte) (*entity.Catalog, error) {
	var c entity.Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := check(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func check(c *entity.Catalog) error {
	levels := make(map[string]bool)
	for _, level := range c.Levels {
		if level.ID == "" {
			return fmt.Errorf("catalog: school level without id")
		}
		if levels[level.ID] {
			return fmt.Errorf("catalog: duplicate school level %q", level.ID)
		}
		levels[level.ID] = true

		programs := make(map[string]bool)
		for _, p := range level.Programs {
			if p.ID == "" || programs[p.ID] {
				return fmt.Errorf("catalog: level %q: missing or duplicate program id %q", level.ID, p.ID)
			}
			programs[p.ID] = true
			if p.BasePrice < 0 {
				return fmt.Errorf("catalog: program %q: negative base price", p.ID)
			}
			courses := make(map[string]bool)
			for _, course := range p.Courses {
				if course.ID == "" || courses[course.ID] {
					return fmt.Errorf("catalog: program %q: missing or duplicate course id %q", p.ID, course.ID)
				}
				courses[course.ID] = true
				if course.Price < 0 {
					return fmt.Errorf("catalog: course %q: negative price", course.ID)
				}
			}
		}
	}
	return nil
}
