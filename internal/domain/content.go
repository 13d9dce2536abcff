package domain

import "time"

type ResourceType string

const (
	ResourceTypeDrive ResourceType = "drive"
	ResourceTypeLink  ResourceType = "link"
	ResourceTypeVideo ResourceType = "video"
)

type ResourceCategory string

const (
	CategoryGettingStarted    ResourceCategory = "getting-started"
	CategoryPromptEngineering ResourceCategory = "prompt-engineering"
	CategoryWorkshops         ResourceCategory = "workshops"
	CategoryReference         ResourceCategory = "reference"
	CategoryExternal          ResourceCategory = "external"
	CategoryFaculty           ResourceCategory = "faculty"
)

type Audience string

const (
	AudienceStudent Audience = "student"
	AudienceFaculty Audience = "faculty"
	AudienceAll     Audience = "all"
)

// Resource is a learning resource in the catalog. Order is assigned by hand.
type Resource struct {
	ID          string           `json:"id" firestore:"-"`
	Title       string           `json:"title" firestore:"title"`
	Description string           `json:"description" firestore:"description"`
	Type        ResourceType     `json:"type" firestore:"type"`
	Href        string           `json:"href" firestore:"href"`
	Category    ResourceCategory `json:"category" firestore:"category"`
	Audience    Audience         `json:"audience" firestore:"audience"`
	TechLevels  []TechLevel      `json:"techLevels" firestore:"techLevels"`
	Tags        []string         `json:"tags" firestore:"tags"`
	Featured    bool             `json:"featured" firestore:"featured"`
	Order       int              `json:"order" firestore:"order"`
	Published   bool             `json:"published" firestore:"published"`
	CreatedAt   time.Time        `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt" firestore:"updatedAt"`
}

type CaseStudyType string

const (
	CaseStudyAcademic CaseStudyType = "academic"
	CaseStudyClub     CaseStudyType = "club"
)

// CaseStudy describes a course or organization that built with the club.
// Academic studies use the course fields, club studies the org fields.
type CaseStudy struct {
	ID          string        `json:"id" firestore:"-"`
	Type        CaseStudyType `json:"type" firestore:"type"`
	Title       string        `json:"title" firestore:"title"`
	Semester    string        `json:"semester" firestore:"semester"`
	Description string        `json:"description" firestore:"description"`
	Outcomes    []string      `json:"outcomes" firestore:"outcomes"`
	Tools       []string      `json:"tools" firestore:"tools"`
	Tags        []string      `json:"tags" firestore:"tags"`
	TechLevels  []TechLevel   `json:"techLevels" firestore:"techLevels"`
	Audience    Audience      `json:"audience" firestore:"audience"`
	Featured    bool          `json:"featured" firestore:"featured"`
	Order       int           `json:"order" firestore:"order"`
	Published   bool          `json:"published" firestore:"published"`

	Course      string `json:"course,omitempty" firestore:"course"`
	CourseTitle string `json:"courseTitle,omitempty" firestore:"courseTitle"`
	Professor   string `json:"professor,omitempty" firestore:"professor"`
	Department  string `json:"department,omitempty" firestore:"department"`

	OrgName string `json:"orgName,omitempty" firestore:"orgName"`
	OrgType string `json:"orgType,omitempty" firestore:"orgType"`

	Image     string    `json:"image,omitempty" firestore:"image"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}
