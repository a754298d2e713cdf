package enrollment

import (
	"EnrollHub/entity"
	"slices"
	"time"
)

// Form holds every value the student has entered so far.
type Form struct {
	SchoolLevel     string   `json:"school_level" bson:"school_level"`
	Program         string   `json:"program" bson:"program"`
	SelectedCourses []string `json:"selected_courses" bson:"selected_courses"`

	FullName    string `json:"full_name" bson:"full_name"`
	DateOfBirth string `json:"date_of_birth" bson:"date_of_birth"`
	Email       string `json:"email" bson:"email"`
	Phone       string `json:"phone" bson:"phone"`
	Address     string `json:"address" bson:"address"`
	Gender      string `json:"gender" bson:"gender"`

	ProofType     entity.ProofType `json:"proof_type" bson:"proof_type"`
	Screenshot    string           `json:"-" bson:"screenshot"`
	HasScreenshot bool             `json:"has_screenshot" bson:"has_screenshot"`
	Link          string           `json:"link" bson:"link"`
	TransactionID string           `json:"transaction_id" bson:"transaction_id"`
}

// FieldUpdate carries the fields a client wants to change; nil means untouched.
type FieldUpdate struct {
	SchoolLevel     *string   `json:"school_level"`
	Program         *string   `json:"program"`
	SelectedCourses *[]string `json:"selected_courses"`

	FullName    *string `json:"full_name"`
	DateOfBirth *string `json:"date_of_birth"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Gender      *string `json:"gender"`

	ProofType     *entity.ProofType `json:"proof_type"`
	Screenshot    *string           `json:"screenshot"`
	Link          *string           `json:"link"`
	TransactionID *string           `json:"transaction_id"`
}

// State is one wizard session.
type State struct {
	ID              string               `json:"id" bson:"_id"`
	Locale          entity.Locale        `json:"locale" bson:"locale"`
	CurrentStep     StepID               `json:"current_step" bson:"current_step"`
	Form            Form                 `json:"form" bson:"form"`
	CalculatedPrice float64              `json:"calculated_price" bson:"calculated_price"`
	Loading         bool                 `json:"loading" bson:"loading"`
	SubmittedAt     time.Time            `json:"-" bson:"submitted_at,omitempty"`
	Errors          map[string]string    `json:"errors,omitempty" bson:"errors"`
	Focus           string               `json:"focus,omitempty" bson:"focus"`
	Verdict         *entity.Verdict      `json:"verdict,omitempty" bson:"verdict"`
	Registration    *entity.Registration `json:"registration,omitempty" bson:"registration,omitempty"`
	CreatedAt       time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at" bson:"updated_at"`
}

func NewState(id string, locale entity.Locale, now time.Time) *State {
	return &State{
		ID:          id,
		Locale:      locale,
		CurrentStep: StepProgramSelection,
		Form:        Form{SelectedCourses: []string{}},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Apply writes the update into the form. A new school level clears the program and
// courses; a new program clears the courses.
func (f *Form) Apply(u FieldUpdate) {
	if u.SchoolLevel != nil && *u.SchoolLevel != f.SchoolLevel {
		f.SchoolLevel = *u.SchoolLevel
		f.Program = ""
		f.SelectedCourses = []string{}
	}
	if u.Program != nil && *u.Program != f.Program {
		f.Program = *u.Program
		f.SelectedCourses = []string{}
	}
	if u.SelectedCourses != nil {
		f.SelectedCourses = uniq(*u.SelectedCourses)
	}

	setString(&f.FullName, u.FullName)
	setString(&f.DateOfBirth, u.DateOfBirth)
	setString(&f.Email, u.Email)
	setString(&f.Phone, u.Phone)
	setString(&f.Address, u.Address)
	setString(&f.Gender, u.Gender)

	if u.ProofType != nil {
		f.ProofType = *u.ProofType
	}
	if u.Screenshot != nil {
		f.Screenshot = *u.Screenshot
		f.HasScreenshot = f.Screenshot != ""
	}
	setString(&f.Link, u.Link)
	setString(&f.TransactionID, u.TransactionID)
}

func (f *Form) Proof() entity.PaymentProof {
	return entity.PaymentProof{
		Type:          f.ProofType,
		Screenshot:    f.Screenshot,
		Link:          f.Link,
		TransactionID: f.TransactionID,
	}
}

func (f *Form) Student() entity.StudentInfo {
	return entity.StudentInfo{
		FullName:    f.FullName,
		DateOfBirth: f.DateOfBirth,
		Email:       f.Email,
		Phone:       f.Phone,
		Address:     f.Address,
		Gender:      f.Gender,
	}
}

func (f *Form) Selection() entity.ProgramSelection {
	return entity.ProgramSelection{
		SchoolLevel:     f.SchoolLevel,
		ProgramID:       f.Program,
		SelectedCourses: slices.Clone(f.SelectedCourses),
	}
}

// Clone returns a deep copy safe to hand to another goroutine or store.
func (s *State) Clone() *State {
	c := *s
	c.Form.SelectedCourses = slices.Clone(s.Form.SelectedCourses)
	if s.Errors != nil {
		c.Errors = make(map[string]string, len(s.Errors))
		for k, v := range s.Errors {
			c.Errors[k] = v
		}
	}
	if s.Verdict != nil {
		v := *s.Verdict
		c.Verdict = &v
	}
	if s.Registration != nil {
		r := *s.Registration
		r.Selection.SelectedCourses = slices.Clone(s.Registration.Selection.SelectedCourses)
		r.Participants = slices.Clone(s.Registration.Participants)
		c.Registration = &r
	}
	return &c
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func uniq(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
