// Package stats computes the admin dashboard figures from the stored collections.
package stats

import (
	"EnrollHub/entity"
	"strings"
)

// Compute makes a full pass over registrations and returns per-program counts and the
// gender tally. Program labels are resolved in locale, then the default locale, then
// the catalog program name, then the raw id.
func Compute(registrations []entity.Registration, programs []entity.Program, catalog *entity.Catalog, locale entity.Locale) entity.Stats {
	byID := make(map[string]*entity.Program, len(programs))
	for i := range programs {
		byID[programs[i].ID] = &programs[i]
	}

	st := entity.Stats{
		Programs:      make(map[string]entity.ProgramCount),
		Registrations: len(registrations),
	}

	for i := range registrations {
		for _, p := range registrations[i].EnrolledParticipants() {
			if p.ProgramID != "" {
				pc, ok := st.Programs[p.ProgramID]
				if !ok {
					pc = entity.ProgramCount{
						ProgramID: p.ProgramID,
						Label:     Label(p.ProgramID, byID[p.ProgramID], catalog, locale),
					}
				}
				pc.Count++
				st.Programs[p.ProgramID] = pc
			}

			switch strings.ToLower(strings.TrimSpace(p.Gender)) {
			case entity.GenderMale:
				st.Gender.Male++
			case entity.GenderFemale:
				st.Gender.Female++
			}
		}
	}
	return st
}

// Label picks the display name of a program.
func Label(programID string, program *entity.Program, catalog *entity.Catalog, locale entity.Locale) string {
	if program != nil {
		if c, ok := program.Translations[locale]; ok && c.Label != "" {
			return c.Label
		}
		if c, ok := program.Translations[entity.DefaultLocale]; ok && c.Label != "" {
			return c.Label
		}
	}
	if name, ok := catalog.ProgramName(programID); ok {
		return name
	}
	return programID
}
