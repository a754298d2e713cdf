package bot

import (
	"EnrollHub/entity"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Total: 1220.00", `Total: 1220\.00`},
		{"*bold* (grade_9)", `*bold* \(grade\_9\)`},
		{"[link](http://x)", `\[link\]\(http://x\)`},
		{"high-school", `high\-school`},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitize(tt.in), tt.in)
	}
}

func TestFormatStats(t *testing.T) {
	st := entity.Stats{
		Registrations: 3,
		Gender:        entity.GenderTally{Male: 1, Female: 2},
		Programs: map[string]entity.ProgramCount{
			"grade_9":    {ProgramID: "grade_9", Label: "Grade 9", Count: 1},
			"quran_kids": {ProgramID: "quran_kids", Label: "Quran for Kids", Count: 2},
		},
	}
	assert.Equal(t, "*Registrations:* 3\nMale: 1, Female: 2\nQuran for Kids: 2\nGrade 9: 1", FormatStats(st))
}

func TestFormatRegistration(t *testing.T) {
	reg := entity.Registration{
		Student:         entity.StudentInfo{FullName: "Amina Diallo", Email: "amina@example.com"},
		Selection:       entity.ProgramSelection{SchoolLevel: "high_school", ProgramID: "grade_9", SelectedCourses: []string{"math_9", "science_9"}},
		CalculatedPrice: 1220,
		PaymentProof:    entity.PaymentProof{Type: entity.ProofTransactionID, TransactionID: "TX123456"},
		Verification:    &entity.Verdict{IsValid: true, TransactionNumber: "TX123456"},
	}
	msg := FormatRegistration(reg)
	assert.Contains(t, msg, "Amina Diallo")
	assert.Contains(t, msg, "Courses: math_9, science_9")
	assert.Contains(t, msg, "Total: 1220.00")
	assert.Contains(t, msg, "Proof: transaction_id (TX123456)")
}
