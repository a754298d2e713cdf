package enrollment

import (
	"EnrollHub/entity"
	"EnrollHub/internal/service/enrollment"
	"context"
)

type Core interface {
	StartEnrollment(ctx context.Context, locale entity.Locale) (*enrollment.State, error)
	GetEnrollment(ctx context.Context, id string) (*enrollment.State, error)
	DiscardEnrollment(ctx context.Context, id string) error
	UpdateEnrollment(ctx context.Context, id string, update enrollment.FieldUpdate) (*enrollment.State, error)
	SetEnrollmentLocale(ctx context.Context, id string, locale entity.Locale) (*enrollment.State, error)
	NextStep(ctx context.Context, id string) (*enrollment.State, error)
	PreviousStep(ctx context.Context, id string) (*enrollment.State, error)
	AttachScreenshot(ctx context.Context, id string, image []byte) (*enrollment.State, error)
	SubmitEnrollment(ctx context.Context, id string) (*enrollment.State, error)
}
