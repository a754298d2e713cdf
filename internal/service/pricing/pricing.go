// Package pricing derives the amount due for a program selection.
package pricing

import "EnrollHub/entity"

// Compute returns base price plus the prices of the selected courses that belong to
// the program. An unknown program yields 0 so an in-progress selection never blocks the form.
func Compute(catalog *entity.Catalog, schoolLevel, programID string, courseIDs []string) float64 {
	program, ok := catalog.FindProgram(schoolLevel, programID)
	if !ok {
		return 0
	}
	total := program.BasePrice
	for _, id := range courseIDs {
		if course, ok := program.FindCourse(id); ok {
			total += course.Price
		}
	}
	return total
}
