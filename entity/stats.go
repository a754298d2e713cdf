package entity

type ProgramCount struct {
	ProgramID string `json:"program_id"`
	Label     string `json:"label"`
	Count     int    `json:"count"`
}

type GenderTally struct {
	Male   int `json:"male"`
	Female int `json:"female"`
}

type Stats struct {
	Programs      map[string]ProgramCount `json:"programs"`
	Gender        GenderTally             `json:"gender"`
	Registrations int                     `json:"registrations"`
}
