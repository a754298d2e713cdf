package enrollment

import (
	"EnrollHub/entity"
	"EnrollHub/internal/service/catalog"
	"EnrollHub/internal/service/verification"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R', 0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0}

type fakeAnalyzer struct {
	mu       sync.Mutex
	analysis entity.PaymentAnalysis
	calls    int
	started  chan struct{}
	release  chan struct{}
}

func (f *fakeAnalyzer) AnalyzePayment(_ context.Context, _ string, _ float64, _ string) (entity.PaymentAnalysis, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}
	return f.analysis, nil
}

type fakeRegistrations struct {
	saved []entity.Registration
	err   error
}

func (f *fakeRegistrations) SaveRegistration(_ context.Context, r *entity.Registration) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, *r)
	return nil
}

type fakeFiles struct {
	names []string
}

func (f *fakeFiles) UploadFile(_ context.Context, filename string, r io.Reader, _ entity.FileMetadata) (string, error) {
	f.names = append(f.names, filename)
	_, _ = io.ReadAll(r)
	return "file-1", nil
}

type recorder struct {
	created []string
}

func (r *recorder) RegistrationCreated(_ context.Context, reg entity.Registration) {
	r.created = append(r.created, reg.ID)
}

type fixture struct {
	flow          *Flow
	storage       *MemoryStorage
	analyzer      *fakeAnalyzer
	registrations *fakeRegistrations
	files         *fakeFiles
	listener      *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cat, err := catalog.Load("")
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	fx := &fixture{
		storage:       NewMemoryStorage(),
		analyzer:      &fakeAnalyzer{},
		registrations: &fakeRegistrations{},
		files:         &fakeFiles{},
		listener:      &recorder{},
	}
	verifier := verification.New(log,
		verification.NewScreenshotStrategy(fx.analyzer),
		verification.LinkStrategy{},
		verification.TransactionStrategy{},
	)
	fx.flow = NewFlow(cat, fx.storage, verifier, log)
	fx.flow.SetRegistrationStore(fx.registrations)
	fx.flow.SetFileStore(fx.files)
	fx.flow.AddListener(fx.listener)
	return fx
}

func str(s string) *string { return &s }

func amount(v float64) *float64 { return &v }

// toPayment fills a valid form for high_school/grade_9 with two courses and moves to the payment step.
func (fx *fixture) toPayment(t *testing.T) *State {
	t.Helper()
	ctx := context.Background()
	s, err := fx.flow.Start(ctx, entity.LocaleEnglish)
	require.NoError(t, err)

	_, err = fx.flow.Update(ctx, s.ID, FieldUpdate{SchoolLevel: str("high_school"), Program: str("grade_9")})
	require.NoError(t, err)
	_, err = fx.flow.Next(ctx, s.ID)
	require.NoError(t, err)

	_, err = fx.flow.Update(ctx, s.ID, FieldUpdate{
		FullName:    str("Amina Diallo"),
		DateOfBirth: str("2010-04-12"),
		Email:       str("amina@example.com"),
		Gender:      str(entity.GenderFemale),
	})
	require.NoError(t, err)
	_, err = fx.flow.Next(ctx, s.ID)
	require.NoError(t, err)

	_, err = fx.flow.Update(ctx, s.ID, FieldUpdate{SelectedCourses: &[]string{"math_9", "science_9"}})
	require.NoError(t, err)
	s, err = fx.flow.Next(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, StepPaymentProof, s.CurrentStep)
	return s
}

func TestStartOpensFirstStep(t *testing.T) {
	fx := newFixture(t)
	s, err := fx.flow.Start(context.Background(), entity.LocaleFrench)
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, StepProgramSelection, s.CurrentStep)
	assert.Equal(t, entity.LocaleFrench, s.Locale)
	assert.Zero(t, s.CalculatedPrice)

	got, err := fx.flow.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
}

func TestGetUnknownSession(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.flow.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPriceFollowsSelection(t *testing.T) {
	fx := newFixture(t)
	s := fx.toPayment(t)
	assert.Equal(t, 1220.0, s.CalculatedPrice)
}

func TestSchoolLevelChangeClearsProgramAndCourses(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	s, _ := fx.flow.Start(ctx, entity.LocaleEnglish)

	_, err := fx.flow.Update(ctx, s.ID, FieldUpdate{
		SchoolLevel:     str("high_school"),
		Program:         str("grade_9"),
		SelectedCourses: &[]string{"math_9"},
	})
	require.NoError(t, err)

	s, err = fx.flow.Update(ctx, s.ID, FieldUpdate{SchoolLevel: str("middle_school")})
	require.NoError(t, err)
	assert.Equal(t, "middle_school", s.Form.SchoolLevel)
	assert.Empty(t, s.Form.Program)
	assert.Empty(t, s.Form.SelectedCourses)
	assert.Zero(t, s.CalculatedPrice)
}

func TestSameSchoolLevelKeepsSelection(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	s, _ := fx.flow.Start(ctx, entity.LocaleEnglish)

	_, _ = fx.flow.Update(ctx, s.ID, FieldUpdate{
		SchoolLevel:     str("high_school"),
		Program:         str("grade_9"),
		SelectedCourses: &[]string{"math_9"},
	})
	s, err := fx.flow.Update(ctx, s.ID, FieldUpdate{SchoolLevel: str("high_school")})
	require.NoError(t, err)
	assert.Equal(t, "grade_9", s.Form.Program)
	assert.Equal(t, []string{"math_9"}, s.Form.SelectedCourses)
}

func TestProgramChangeClearsCourses(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	s, _ := fx.flow.Start(ctx, entity.LocaleEnglish)

	_, _ = fx.flow.Update(ctx, s.ID, FieldUpdate{
		SchoolLevel:     str("high_school"),
		Program:         str("grade_9"),
		SelectedCourses: &[]string{"math_9", "science_9"},
	})
	s, err := fx.flow.Update(ctx, s.ID, FieldUpdate{Program: str("grade_10")})
	require.NoError(t, err)
	assert.Equal(t, "high_school", s.Form.SchoolLevel)
	assert.Empty(t, s.Form.SelectedCourses)
	assert.Equal(t, 1100.0, s.CalculatedPrice)
}

func TestSelectedCoursesAreDeduplicated(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	s, _ := fx.flow.Start(ctx, entity.LocaleEnglish)

	s, err := fx.flow.Update(ctx, s.ID, FieldUpdate{
		SchoolLevel:     str("high_school"),
		Program:         str("grade_9"),
		SelectedCourses: &[]string{"math_9", "math_9", "", "science_9"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"math_9", "science_9"}, s.Form.SelectedCourses)
	assert.Equal(t, 1220.0, s.CalculatedPrice)
}

func TestNextValidation(t *testing.T) {
	tests := []struct {
		name   string
		update FieldUpdate
		focus  string
		fields []string
	}{
		{
			name:   "nothing selected",
			update: FieldUpdate{},
			focus:  "school_level",
			fields: []string{"school_level", "program"},
		},
		{
			name:   "program missing",
			update: FieldUpdate{SchoolLevel: str("high_school")},
			focus:  "program",
			fields: []string{"program"},
		},
		{
			name:   "program from another level",
			update: FieldUpdate{SchoolLevel: str("primary"), Program: str("grade_9")},
			focus:  "program",
			fields: []string{"program"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			ctx := context.Background()
			s, _ := fx.flow.Start(ctx, entity.LocaleEnglish)
			_, err := fx.flow.Update(ctx, s.ID, tt.update)
			require.NoError(t, err)

			s, err = fx.flow.Next(ctx, s.ID)
			assert.ErrorIs(t, err, ErrValidation)
			require.NotNil(t, s)
			assert.Equal(t, StepProgramSelection, s.CurrentStep)
			assert.Equal(t, tt.focus, s.Focus)
			for _, f := range tt.fields {
				assert.Contains(t, s.Errors, f)
			}
		})
	}
}

func TestStudentInfoValidationMessages(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	s, _ := fx.flow.Start(ctx, entity.LocaleFrench)
	_, _ = fx.flow.Update(ctx, s.ID, FieldUpdate{SchoolLevel: str("high_school"), Program: str("grade_9")})
	_, err := fx.flow.Next(ctx, s.ID)
	require.NoError(t, err)

	_, _ = fx.flow.Update(ctx, s.ID, FieldUpdate{FullName: str("Amina"), Email: str("not-an-email")})
	s, err = fx.flow.Next(ctx, s.ID)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, StepStudentInfo, s.CurrentStep)
	assert.Equal(t, "date_of_birth", s.Focus)
	assert.Equal(t, "Ce champ est obligatoire.", s.Errors["date_of_birth"])
	assert.Equal(t, "Veuillez saisir une adresse e-mail valide.", s.Errors["email"])

	// errors clear once the step passes
	_, _ = fx.flow.Update(ctx, s.ID, FieldUpdate{DateOfBirth: str("2010-04-12"), Email: str("amina@example.com")})
	s, err = fx.flow.Next(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, StepCourseSelection, s.CurrentStep)
	assert.Empty(t, s.Errors)
	assert.Empty(t, s.Focus)
}

func TestCourseSelectionMayBeEmpty(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	s, _ := fx.flow.Start(ctx, entity.LocaleEnglish)
	_, _ = fx.flow.Update(ctx, s.ID, FieldUpdate{SchoolLevel: str("high_school"), Program: str("grade_9")})
	_, _ = fx.flow.Next(ctx, s.ID)
	_, _ = fx.flow.Update(ctx, s.ID, FieldUpdate{
		FullName:    str("Amina Diallo"),
		DateOfBirth: str("2010-04-12"),
		Email:       str("amina@example.com"),
	})
	_, _ = fx.flow.Next(ctx, s.ID)

	s, err := fx.flow.Next(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, StepPaymentProof, s.CurrentStep)
	assert.Equal(t, 1000.0, s.CalculatedPrice)
}

func TestPreviousRules(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	s, _ := fx.flow.Start(ctx, entity.LocaleEnglish)

	_, err := fx.flow.Previous(ctx, s.ID)
	assert.ErrorIs(t, err, ErrFirstStep)

	s = fx.toPayment(t)
	s, err = fx.flow.Previous(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, StepCourseSelection, s.CurrentStep)
	assert.Equal(t, []string{"math_9", "science_9"}, s.Form.SelectedCourses)
}

func TestPaymentStepLeftOnlyBySubmit(t *testing.T) {
	fx := newFixture(t)
	s := fx.toPayment(t)

	_, err := fx.flow.Next(context.Background(), s.ID)
	assert.ErrorIs(t, err, ErrSubmitRequired)
}

func TestSubmitBeforePaymentStep(t *testing.T) {
	fx := newFixture(t)
	s, _ := fx.flow.Start(context.Background(), entity.LocaleEnglish)

	_, err := fx.flow.Submit(context.Background(), s.ID)
	assert.ErrorIs(t, err, ErrNotAtPayment)
}

func TestSubmitTransactionID(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	s := fx.toPayment(t)

	proofType := entity.ProofTransactionID
	_, err := fx.flow.Update(ctx, s.ID, FieldUpdate{ProofType: &proofType, TransactionID: str("TX123456")})
	require.NoError(t, err)

	s, err = fx.flow.Submit(ctx, s.ID)
	require.NoError(t, err)

	assert.Equal(t, StepConfirmation, s.CurrentStep)
	assert.False(t, s.Loading)
	require.NotNil(t, s.Verdict)
	assert.True(t, s.Verdict.IsValid)
	assert.Equal(t, "TX123456", s.Verdict.TransactionNumber)

	require.Len(t, fx.registrations.saved, 1)
	reg := fx.registrations.saved[0]
	assert.Equal(t, 1220.0, reg.CalculatedPrice)
	assert.True(t, reg.PaymentVerified)
	assert.Equal(t, "grade_9", reg.Selection.ProgramID)
	assert.Equal(t, []string{"math_9", "science_9"}, reg.Selection.SelectedCourses)
	assert.Equal(t, "Amina Diallo", reg.Student.FullName)
	assert.Equal(t, []string{reg.ID}, fx.listener.created)
	assert.Zero(t, fx.analyzer.calls)
}

func TestSubmitScreenshotWithoutImage(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	s := fx.toPayment(t)

	proofType := entity.ProofScreenshot
	_, _ = fx.flow.Update(ctx, s.ID, FieldUpdate{ProofType: &proofType})

	s, err := fx.flow.Submit(ctx, s.ID)
	assert.ErrorIs(t, err, ErrPaymentRejected)
	require.NotNil(t, s)
	assert.Equal(t, StepPaymentProof, s.CurrentStep)
	assert.False(t, s.Loading)
	assert.False(t, s.Verdict.IsValid)
	assert.Equal(t, entity.ReasonMissingScreenshot, s.Verdict.Reason)
	assert.Zero(t, fx.analyzer.calls)
	assert.Empty(t, fx.registrations.saved)
	assert.Empty(t, fx.listener.created)
}

func TestSubmitScreenshotAmountMismatch(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	s := fx.toPayment(t)
	fx.analyzer.analysis = entity.PaymentAnalysis{IsValid: true, ExtractedAmount: amount(1000)}

	_, err := fx.flow.AttachScreenshot(ctx, s.ID, pngBytes)
	require.NoError(t, err)

	s, err = fx.flow.Submit(ctx, s.ID)
	assert.ErrorIs(t, err, ErrPaymentRejected)
	assert.Equal(t, entity.ReasonAmountMismatch, s.Verdict.Reason)
	assert.Equal(t, 1, fx.analyzer.calls)

	// the student may fix the proof and retry
	fx.analyzer.analysis = entity.PaymentAnalysis{IsValid: true, ExtractedAmount: amount(1220)}
	s, err = fx.flow.Submit(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, StepConfirmation, s.CurrentStep)
	assert.Empty(t, s.Form.Screenshot)

	require.Len(t, fx.registrations.saved, 1)
	assert.Equal(t, "file-1", fx.registrations.saved[0].PaymentProof.ScreenshotFileID)
	assert.Empty(t, fx.registrations.saved[0].PaymentProof.Screenshot)
	assert.Equal(t, []string{"screenshot-" + s.ID + ".png"}, fx.files.names)
}

func TestAttachScreenshotRejectsNonImage(t *testing.T) {
	fx := newFixture(t)
	s := fx.toPayment(t)

	_, err := fx.flow.AttachScreenshot(context.Background(), s.ID, []byte("plain text"))
	assert.ErrorIs(t, err, ErrInvalidScreenshot)
}

func TestConfirmationIsTerminal(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	s := fx.toPayment(t)
	proofType := entity.ProofTransactionID
	_, _ = fx.flow.Update(ctx, s.ID, FieldUpdate{ProofType: &proofType, TransactionID: str("TX123456")})
	_, err := fx.flow.Submit(ctx, s.ID)
	require.NoError(t, err)

	_, err = fx.flow.Next(ctx, s.ID)
	assert.ErrorIs(t, err, ErrCompleted)
	_, err = fx.flow.Previous(ctx, s.ID)
	assert.ErrorIs(t, err, ErrCompleted)
	_, err = fx.flow.Update(ctx, s.ID, FieldUpdate{FullName: str("Someone Else")})
	assert.ErrorIs(t, err, ErrCompleted)
	_, err = fx.flow.Submit(ctx, s.ID)
	assert.ErrorIs(t, err, ErrCompleted)
	assert.Len(t, fx.registrations.saved, 1)
}

func TestSubmitFailureKeepsSession(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	s := fx.toPayment(t)
	fx.registrations.err = errors.New("connection refused")
	proofType := entity.ProofTransactionID
	_, _ = fx.flow.Update(ctx, s.ID, FieldUpdate{ProofType: &proofType, TransactionID: str("TX123456")})

	_, err := fx.flow.Submit(ctx, s.ID)
	assert.Error(t, err)

	s, err = fx.flow.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, StepPaymentProof, s.CurrentStep)
	assert.False(t, s.Loading)
	assert.Empty(t, fx.listener.created)
}

func TestConcurrentSubmitIsRejected(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	s := fx.toPayment(t)
	fx.analyzer.analysis = entity.PaymentAnalysis{IsValid: true, ExtractedAmount: amount(1220)}
	fx.analyzer.started = make(chan struct{})
	fx.analyzer.release = make(chan struct{})
	_, err := fx.flow.AttachScreenshot(ctx, s.ID, pngBytes)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := fx.flow.Submit(ctx, s.ID)
		done <- err
	}()
	<-fx.analyzer.started

	_, err = fx.flow.Submit(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSubmitInFlight)
	_, err = fx.flow.Update(ctx, s.ID, FieldUpdate{Link: str("https://pay.example/1")})
	assert.ErrorIs(t, err, ErrSubmitInFlight)
	_, err = fx.flow.Previous(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(fx.analyzer.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, fx.analyzer.calls)
	assert.Len(t, fx.registrations.saved, 1)
}

func TestStaleLoadingFlagIsIgnored(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	s := fx.toPayment(t)
	proofType := entity.ProofTransactionID
	_, _ = fx.flow.Update(ctx, s.ID, FieldUpdate{ProofType: &proofType, TransactionID: str("TX123456")})

	stored, _ := fx.storage.Load(ctx, s.ID)
	stored.Loading = true
	stored.SubmittedAt = time.Now().Add(-time.Hour)
	require.NoError(t, fx.storage.Save(ctx, stored))

	fx.flow.SetSubmitTimeout(time.Minute)
	s, err := fx.flow.Submit(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, StepConfirmation, s.CurrentStep)
}

func TestDiscard(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	s, _ := fx.flow.Start(ctx, entity.LocaleEnglish)

	require.NoError(t, fx.flow.Discard(ctx, s.ID))
	_, err := fx.flow.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, fx.flow.Discard(ctx, s.ID), ErrSessionNotFound)
}

func TestSetLocaleChangesMessages(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	s, _ := fx.flow.Start(ctx, entity.LocaleEnglish)

	s, err := fx.flow.SetLocale(ctx, s.ID, entity.LocaleArabic)
	require.NoError(t, err)
	assert.Equal(t, entity.LocaleArabic, s.Locale)

	s, err = fx.flow.Next(ctx, s.ID)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "هذا الحقل مطلوب.", s.Errors["school_level"])
}
