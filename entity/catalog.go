package entity

// Catalog is the static reference data of school levels, their programs and courses.
type Catalog struct {
	Levels []SchoolLevel `json:"levels" yaml:"levels"`
}

type SchoolLevel struct {
	ID       string           `json:"id" yaml:"id"`
	Name     string           `json:"name" yaml:"name"`
	Programs []CatalogProgram `json:"programs" yaml:"programs"`
}

type CatalogProgram struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	BasePrice float64  `json:"base_price" yaml:"base_price"`
	Courses   []Course `json:"courses" yaml:"courses"`
}

type Course struct {
	ID    string  `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Price float64 `json:"price" yaml:"price"`
}

// FindProgram looks a program up by its school level and id.
func (c *Catalog) FindProgram(levelID, programID string) (*CatalogProgram, bool) {
	if c == nil || levelID == "" || programID == "" {
		return nil, false
	}
	for i := range c.Levels {
		if c.Levels[i].ID != levelID {
			continue
		}
		for j := range c.Levels[i].Programs {
			if c.Levels[i].Programs[j].ID == programID {
				return &c.Levels[i].Programs[j], true
			}
		}
		return nil, false
	}
	return nil, false
}

// ProgramName returns the name of the first program with id in any level.
func (c *Catalog) ProgramName(programID string) (string, bool) {
	if c == nil {
		return "", false
	}
	for _, level := range c.Levels {
		for _, p := range level.Programs {
			if p.ID == programID && p.Name != "" {
				return p.Name, true
			}
		}
	}
	return "", false
}

func (p *CatalogProgram) FindCourse(courseID string) (*Course, bool) {
	for i := range p.Courses {
		if p.Courses[i].ID == courseID {
			return &p.Courses[i], true
		}
	}
	return nil, false
}
