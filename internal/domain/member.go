package domain

import "time"

type TechLevel string

const (
	TechLevelBeginner     TechLevel = "beginner"
	TechLevelSome         TechLevel = "some"
	TechLevelIntermediate TechLevel = "intermediate"
	TechLevelAdvanced     TechLevel = "advanced"
)

type Year string

const (
	YearFreshman  Year = "freshman"
	YearSophomore Year = "sophomore"
	YearJunior    Year = "junior"
	YearSenior    Year = "senior"
	YearGraduate  Year = "graduate"
	YearFaculty   Year = "faculty"
	YearOther     Year = "other"
)

// Member is the profile document stored under members/{uid}.
type Member struct {
	UID            string    `json:"uid" firestore:"uid"`
	Email          string    `json:"email" firestore:"email"`
	DisplayName    string    `json:"displayName" firestore:"displayName"`
	Major          string    `json:"major" firestore:"major"`
	Year           Year      `json:"year" firestore:"year"`
	College        string    `json:"college" firestore:"college"`
	TechLevel      TechLevel `json:"techLevel" firestore:"techLevel"`
	Interests      []string  `json:"interests" firestore:"interests"`
	EmailReminders bool      `json:"emailReminders" firestore:"emailReminders"`
	Newsletter     bool      `json:"newsletter" firestore:"newsletter"`
	CreatedAt      time.Time `json:"createdAt,omitempty" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" firestore:"updatedAt"`
	IsAdmin        bool      `json:"isAdmin" firestore:"isAdmin"`
	ReferralSource string    `json:"referralSource,omitempty" firestore:"referralSource,omitempty"`
	ProfilePublic  *bool     `json:"profilePublic,omitempty" firestore:"profilePublic,omitempty"`
}

// IsProfileComplete reports whether every field the dashboard counts as
// "complete" is filled in.
func (m *Member) IsProfileComplete() bool {
	return m.DisplayName != "" && m.Major != "" && m.Year != "" && m.College != "" && m.TechLevel != ""
}

// IsPublic treats an unset visibility flag as visible.
func (m *Member) IsPublic() bool {
	return m.ProfilePublic == nil || *m.ProfilePublic
}

// HasJoinDate is false for legacy profiles saved before createdAt existed.
func (m *Member) HasJoinDate() bool {
	return !m.CreatedAt.IsZero()
}

// PublicMember is the directory view of a profile; email and opt-ins are omitted.
type PublicMember struct {
	UID         string    `json:"uid"`
	DisplayName string    `json:"displayName"`
	Major       string    `json:"major"`
	Year        Year      `json:"year"`
	College     string    `json:"college"`
	TechLevel   TechLevel `json:"techLevel"`
	Interests   []string  `json:"interests"`
}

func (m *Member) Public() PublicMember {
	return PublicMember{
		UID:         m.UID,
		DisplayName: m.DisplayName,
		Major:       m.Major,
		Year:        m.Year,
		College:     m.College,
		TechLevel:   m.TechLevel,
		Interests:   m.Interests,
	}
}
