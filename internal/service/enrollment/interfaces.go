package enrollment

import (
	"EnrollHub/entity"
	"EnrollHub/internal/lib/validate"
	"context"
	"io"
)

// StepID is the position of a step in the wizard.
type StepID int

const (
	StepProgramSelection StepID = iota
	StepStudentInfo
	StepCourseSelection
	StepPaymentProof
	StepConfirmation
)

func (s StepID) String() string {
	switch s {
	case StepProgramSelection:
		return "program_selection"
	case StepStudentInfo:
		return "student_info"
	case StepCourseSelection:
		return "course_selection"
	case StepPaymentProof:
		return "payment_proof"
	case StepConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

// Step is one stage of the wizard.
type Step interface {
	ID() StepID

	// Validate returns the failed fields of the form for this step, in display order.
	Validate(form *Form) []validate.FieldError
}

// StateStorage handles persistence of wizard sessions.
type StateStorage interface {
	// Save persists a session state.
	Save(ctx context.Context, state *State) error

	// Load retrieves a session state, nil when it does not exist.
	Load(ctx context.Context, id string) (*State, error)

	// Delete removes a session state.
	Delete(ctx context.Context, id string) error
}

// Verifier checks payment proof; it reports failures as invalid verdicts.
type Verifier interface {
	Verify(ctx context.Context, proof entity.PaymentProof, expectedAmount float64) entity.Verdict
}

type RegistrationStore interface {
	SaveRegistration(ctx context.Context, registration *entity.Registration) error
}

type FileStore interface {
	UploadFile(ctx context.Context, filename string, reader io.Reader, meta entity.FileMetadata) (string, error)
}

// Listener is told about every registration once it is persisted.
type Listener interface {
	RegistrationCreated(ctx context.Context, registration entity.Registration)
}
