package entity

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

type StudentInfo struct {
	FullName    string `json:"full_name" bson:"full_name"`
	DateOfBirth string `json:"date_of_birth" bson:"date_of_birth"`
	Email       string `json:"email" bson:"email"`
	Phone       string `json:"phone,omitempty" bson:"phone,omitempty"`
	Address     string `json:"address,omitempty" bson:"address,omitempty"`
	Gender      string `json:"gender,omitempty" bson:"gender,omitempty"`
}

type ProgramSelection struct {
	SchoolLevel     string   `json:"school_level" bson:"school_level"`
	ProgramID       string   `json:"program_id" bson:"program_id"`
	SelectedCourses []string `json:"selected_courses" bson:"selected_courses"`
}

type Participant struct {
	FullName  string `json:"full_name" bson:"full_name"`
	Gender    string `json:"gender,omitempty" bson:"gender,omitempty"`
	ProgramID string `json:"program_id" bson:"program_id"`
}

type Registration struct {
	ID              string           `json:"id" bson:"_id"`
	Student         StudentInfo      `json:"student" bson:"student"`
	Selection       ProgramSelection `json:"selection" bson:"selection"`
	Participants    []Participant    `json:"participants,omitempty" bson:"participants,omitempty"`
	PaymentProof    PaymentProof     `json:"payment_proof" bson:"payment_proof"`
	CalculatedPrice float64          `json:"calculated_price" bson:"calculated_price"`
	PaymentVerified bool             `json:"payment_verified" bson:"payment_verified"`
	Verification    *Verdict         `json:"verification,omitempty" bson:"verification,omitempty"`
	AdminNote       string           `json:"admin_note,omitempty" bson:"admin_note,omitempty"`
	Locale          Locale           `json:"locale" bson:"locale"`
	RegisteredAt    time.Time        `json:"registered_at" bson:"registered_at"`
}

// EnrolledParticipants returns the participants, or one derived from the student
// and selection for registrations stored without a participant list.
func (r *Registration) EnrolledParticipants() []Participant {
	if len(r.Participants) > 0 {
		return r.Participants
	}
	return []Participant{{
		FullName:  r.Student.FullName,
		Gender:    r.Student.Gender,
		ProgramID: r.Selection.ProgramID,
	}}
}
