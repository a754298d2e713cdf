package enrollment

import (
	"EnrollHub/entity"
	"EnrollHub/internal/lib/validate"
)

type programSelectionFields struct {
	SchoolLevel string `json:"school_level" validate:"required"`
	Program     string `json:"program" validate:"required"`
}

type studentInfoFields struct {
	FullName    string `json:"full_name" validate:"required,max=120"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,max=32"`
	Address     string `json:"address" validate:"omitempty,max=255"`
	Gender      string `json:"gender" validate:"omitempty,oneof=male female"`
}

type programSelectionStep struct {
	catalog *entity.Catalog
}

func (s programSelectionStep) ID() StepID { return StepProgramSelection }

// Validate requires both values and that the pair exists in the catalog.
func (s programSelectionStep) Validate(form *Form) []validate.FieldError {
	errs := check(programSelectionFields{SchoolLevel: form.SchoolLevel, Program: form.Program})
	if len(errs) > 0 {
		return errs
	}
	if _, ok := s.catalog.FindProgram(form.SchoolLevel, form.Program); !ok {
		return []validate.FieldError{{Field: "program", Tag: "oneof"}}
	}
	return nil
}

type studentInfoStep struct{}

func (studentInfoStep) ID() StepID { return StepStudentInfo }

func (studentInfoStep) Validate(form *Form) []validate.FieldError {
	return check(studentInfoFields{
		FullName:    form.FullName,
		DateOfBirth: form.DateOfBirth,
		Email:       form.Email,
		Phone:       form.Phone,
		Address:     form.Address,
		Gender:      form.Gender,
	})
}

// courseSelectionStep has no required fields; an empty selection is allowed.
type courseSelectionStep struct{}

func (courseSelectionStep) ID() StepID { return StepCourseSelection }

func (courseSelectionStep) Validate(*Form) []validate.FieldError { return nil }

// paymentProofStep is left only through Submit, where the verifier judges the proof.
type paymentProofStep struct{}

func (paymentProofStep) ID() StepID { return StepPaymentProof }

func (paymentProofStep) Validate(*Form) []validate.FieldError { return nil }

type confirmationStep struct{}

func (confirmationStep) ID() StepID { return StepConfirmation }

func (confirmationStep) Validate(*Form) []validate.FieldError { return nil }

func check(v interface{}) []validate.FieldError {
	errs, err := validate.Fields(v)
	if err != nil {
		return []validate.FieldError{{Field: "form", Tag: "invalid"}}
	}
	return errs
}
