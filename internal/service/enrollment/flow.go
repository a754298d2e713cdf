package enrollment

import (
	"EnrollHub/entity"
	"EnrollHub/internal/lib/datauri"
	"EnrollHub/internal/lib/i18n"
	"EnrollHub/internal/lib/sl"
	"EnrollHub/internal/lib/validate"
	"EnrollHub/internal/service/pricing"
	"EnrollHub/internal/service/verification"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const defaultSubmitTimeout = 2 * time.Minute

// Flow drives enrollment sessions through the wizard steps.
type Flow struct {
	catalog       *entity.Catalog
	steps         []Step
	storage       StateStorage
	verifier      Verifier
	registrations RegistrationStore
	files         FileStore
	listeners     []Listener
	locker        *SessionLocker
	submitTimeout time.Duration
	now           func() time.Time
	log           *slog.Logger
}

func NewFlow(catalog *entity.Catalog, storage StateStorage, verifier Verifier, log *slog.Logger) *Flow {
	return &Flow{
		catalog:  catalog,
		storage:  storage,
		verifier: verifier,
		steps: []Step{
			programSelectionStep{catalog: catalog},
			studentInfoStep{},
			courseSelectionStep{},
			paymentProofStep{},
			confirmationStep{},
		},
		locker:        NewSessionLocker(),
		submitTimeout: defaultSubmitTimeout,
		now:           time.Now,
		log:           log.With(sl.Module("enrollment")),
	}
}

func (f *Flow) SetRegistrationStore(store RegistrationStore) {
	f.registrations = store
}

func (f *Flow) SetFileStore(store FileStore) {
	f.files = store
}

func (f *Flow) AddListener(l Listener) {
	f.listeners = append(f.listeners, l)
}

// SetSubmitTimeout sets how long a pending submission blocks another one.
func (f *Flow) SetSubmitTimeout(d time.Duration) {
	if d > 0 {
		f.submitTimeout = d
	}
}

// Start opens a new session at the first step.
func (f *Flow) Start(ctx context.Context, locale entity.Locale) (*State, error) {
	state := NewState(uuid.NewString(), locale, f.now())
	if err := f.storage.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("saving new session: %w", err)
	}
	f.log.Debug("session started",
		slog.String("session_id", state.ID),
		slog.String("locale", string(locale)),
	)
	return state, nil
}

func (f *Flow) Get(ctx context.Context, id string) (*State, error) {
	return f.load(ctx, id)
}

// Discard removes an unfinished session. A session with a pending submission is kept.
func (f *Flow) Discard(ctx context.Context, id string) error {
	f.locker.Lock(id)
	defer f.locker.Unlock(id)

	state, err := f.load(ctx, id)
	if err != nil {
		return err
	}
	if f.pending(state) {
		return ErrSubmitInFlight
	}
	if err = f.storage.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// Update merges the changed fields into the form and reprices the selection.
func (f *Flow) Update(ctx context.Context, id string, update FieldUpdate) (*State, error) {
	return f.mutate(ctx, id, func(state *State) error {
		if state.CurrentStep == StepConfirmation {
			return ErrCompleted
		}
		if f.pending(state) {
			return ErrSubmitInFlight
		}
		state.Form.Apply(update)
		f.reprice(state)
		return nil
	})
}

// SetLocale switches the language used for messages of the session.
func (f *Flow) SetLocale(ctx context.Context, id string, locale entity.Locale) (*State, error) {
	return f.mutate(ctx, id, func(state *State) error {
		state.Locale = locale
		return nil
	})
}

// Next validates the current step and advances. On ErrValidation the returned
// state carries the field errors and the focus.
func (f *Flow) Next(ctx context.Context, id string) (*State, error) {
	return f.mutate(ctx, id, func(state *State) error {
		switch state.CurrentStep {
		case StepConfirmation:
			return ErrCompleted
		case StepPaymentProof:
			return ErrSubmitRequired
		}
		step := f.steps[state.CurrentStep]
		errs := step.Validate(&state.Form)
		if len(errs) > 0 {
			state.Errors = messages(state.Locale, errs)
			state.Focus = errs[0].Field
			return ErrValidation
		}
		state.Errors = nil
		state.Focus = ""
		state.CurrentStep++
		f.log.Debug("step completed",
			slog.String("session_id", state.ID),
			slog.String("step", step.ID().String()),
		)
		return nil
	})
}

// Previous moves back one step without validating.
func (f *Flow) Previous(ctx context.Context, id string) (*State, error) {
	return f.mutate(ctx, id, func(state *State) error {
		switch {
		case state.CurrentStep == StepConfirmation:
			return ErrCompleted
		case state.CurrentStep == StepProgramSelection:
			return ErrFirstStep
		case f.pending(state):
			return ErrSubmitInFlight
		}
		state.Errors = nil
		state.Focus = ""
		state.CurrentStep--
		return nil
	})
}

// AttachScreenshot stores an uploaded receipt image as the screenshot proof.
func (f *Flow) AttachScreenshot(ctx context.Context, id string, image []byte) (*State, error) {
	uri, err := datauri.EncodeImage(image)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScreenshot, err)
	}
	proofType := entity.ProofScreenshot
	return f.Update(ctx, id, FieldUpdate{ProofType: &proofType, Screenshot: &uri})
}

// Submit verifies the payment proof. An accepted proof is persisted as a
// registration and moves the session to confirmation; a rejected one leaves
// the session at the payment step with the verdict and ErrPaymentRejected.
func (f *Flow) Submit(ctx context.Context, id string) (*State, error) {
	log := f.log.With(slog.String("session_id", id))

	state, err := f.mutate(ctx, id, func(state *State) error {
		switch {
		case state.CurrentStep == StepConfirmation:
			return ErrCompleted
		case state.CurrentStep != StepPaymentProof:
			return ErrNotAtPayment
		case f.pending(state):
			return ErrSubmitInFlight
		}
		f.reprice(state)
		state.Loading = true
		state.SubmittedAt = f.now()
		state.Verdict = nil
		return nil
	})
	if err != nil {
		return state, err
	}

	expected := state.CalculatedPrice
	if expected == 0 {
		log.Warn("submitting enrollment with zero total", slog.String("program", state.Form.Program))
	}

	verdict := f.verifier.Verify(i18n.WithLocale(ctx, state.Locale), state.Form.Proof(), expected)
	accepted := verdict.IsValid && (verdict.ExtractedAmount == nil || verification.AmountsMatch(verdict.ExtractedAmount, expected))

	var registration *entity.Registration
	if accepted {
		registration, err = f.register(ctx, state, verdict)
		if err != nil {
			log.Error("saving registration", sl.Err(err))
			_, _ = f.mutate(ctx, id, func(s *State) error {
				s.Loading = false
				return nil
			})
			return nil, err
		}
	}

	state, err = f.mutate(ctx, id, func(s *State) error {
		s.Loading = false
		s.Verdict = &verdict
		if registration != nil {
			s.Registration = registration
			s.CurrentStep = StepConfirmation
			s.Form.Screenshot = ""
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if registration == nil {
		log.Info("payment proof rejected",
			slog.String("proof_type", string(state.Form.ProofType)),
			slog.String("reason", verdict.Reason),
		)
		return state, ErrPaymentRejected
	}

	log.Info("registration created",
		slog.String("registration_id", registration.ID),
		slog.Float64("amount", expected),
	)
	for _, l := range f.listeners {
		l.RegistrationCreated(ctx, *registration)
	}
	return state, nil
}

func (f *Flow) register(ctx context.Context, state *State, verdict entity.Verdict) (*entity.Registration, error) {
	form := &state.Form
	proof := form.Proof()
	proof.Screenshot = ""

	if form.ProofType == entity.ProofScreenshot && form.Screenshot != "" && f.files != nil {
		fileID, err := f.uploadScreenshot(ctx, state.ID, form.Screenshot)
		if err != nil {
			return nil, err
		}
		proof.ScreenshotFileID = fileID
	}

	registration := &entity.Registration{
		ID:        uuid.NewString(),
		Student:   form.Student(),
		Selection: form.Selection(),
		Participants: []entity.Participant{{
			FullName:  form.FullName,
			Gender:    form.Gender,
			ProgramID: form.Program,
		}},
		PaymentProof:    proof,
		CalculatedPrice: state.CalculatedPrice,
		PaymentVerified: true,
		Verification:    &verdict,
		Locale:          state.Locale,
		RegisteredAt:    f.now(),
	}

	if f.registrations != nil {
		if err := f.registrations.SaveRegistration(ctx, registration); err != nil {
			return nil, fmt.Errorf("saving registration: %w", err)
		}
	}
	return registration, nil
}

func (f *Flow) uploadScreenshot(ctx context.Context, sessionID, uri string) (string, error) {
	mime, data, err := datauri.Decode(uri)
	if err != nil {
		return "", fmt.Errorf("decoding screenshot: %w", err)
	}
	filename := "screenshot-" + sessionID + mimetype.Lookup(mime).Extension()
	fileID, err := f.files.UploadFile(ctx, filename, bytes.NewReader(data), entity.FileMetadata{
		MIMEType:  mime,
		SessionID: sessionID,
	})
	if err != nil {
		return "", fmt.Errorf("uploading screenshot: %w", err)
	}
	return fileID, nil
}

// mutate runs fn on the stored state under the session lock and saves the
// result unless fn fails with anything but ErrValidation.
func (f *Flow) mutate(ctx context.Context, id string, fn func(*State) error) (*State, error) {
	f.locker.Lock(id)
	defer f.locker.Unlock(id)

	state, err := f.load(ctx, id)
	if err != nil {
		return nil, err
	}
	ferr := fn(state)
	if ferr != nil && !errors.Is(ferr, ErrValidation) {
		return state, ferr
	}
	state.UpdatedAt = f.now()
	if err = f.storage.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return state, ferr
}

func (f *Flow) load(ctx context.Context, id string) (*State, error) {
	state, err := f.storage.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if state == nil {
		return nil, ErrSessionNotFound
	}
	return state, nil
}

// pending reports a submission that has not finished yet. A flag older than
// the submit timeout is left over from a crashed request and is ignored.
func (f *Flow) pending(state *State) bool {
	return state.Loading && f.now().Sub(state.SubmittedAt) < f.submitTimeout
}

func (f *Flow) reprice(state *State) {
	state.CalculatedPrice = pricing.Compute(f.catalog, state.Form.SchoolLevel, state.Form.Program, state.Form.SelectedCourses)
}

func messages(locale entity.Locale, errs []validate.FieldError) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		if _, ok := out[e.Field]; ok {
			continue
		}
		fallback := i18n.T(locale, "validation.invalid", "This value is not valid.")
		out[e.Field] = i18n.T(locale, "validation."+e.Tag, fallback)
	}
	return out
}
