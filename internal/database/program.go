package repository

import (
	"EnrollHub/entity"
	"EnrollHub/internal/lib/sl"
	"EnrollHub/internal/service/translation"
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
)

// GetPrograms returns all programs with their default-locale content guaranteed.
func (m *MongoDB) GetPrograms(ctx context.Context) ([]entity.Program, error) {
	docs, err := m.rawDocuments(ctx, programsCollection, bson.D{{Key: "_id", Value: 1}})
	if err != nil {
		return nil, err
	}

	programs := make([]entity.Program, 0, len(docs))
	for _, doc := range docs {
		record := m.normalizer.Normalize(doc, "_id", translation.ProgramSchema)
		var program entity.Program
		if err = record.Decode(&program); err != nil {
			m.log.With(slog.String("program", record.ID), sl.Err(err)).Warn("skipping program")
			continue
		}
		programs = append(programs, program)
	}
	return programs, nil
}

func (m *MongoDB) UpsertProgram(ctx context.Context, program *entity.Program) error {
	return m.upsert(ctx, programsCollection, program.ID, program)
}

func (m *MongoDB) DeleteProgram(ctx context.Context, id string) error {
	return m.delete(ctx, programsCollection, id)
}
