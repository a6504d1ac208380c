package domain

import "time"

// Category identifies which part of the Wisecrew offering an application
// targets.
type Category string

const (
	CategoryInternship Category = "Internship"
	CategoryJob        Category = "Job"
	CategoryCourse     Category = "Course"
	CategoryWorkshop   Category = "Workshop"
	CategoryService    Category = "Service"
)

// idPrefixes maps a category to the short code embedded in application ids.
var idPrefixes = map[Category]string{
	CategoryInternship: "INT",
	CategoryJob:        "JOB",
	CategoryCourse:     "CRS",
	CategoryWorkshop:   "WS",
	CategoryService:    "SVC",
}

// FallbackIDPrefix is used when the raw category token is not recognised.
const FallbackIDPrefix = "APP"

// ResolveCategory is the single place raw category tokens are interpreted.
// An empty token means the caller did not pick anything and gets the
// Internship default with its regular prefix. A non-empty token that matches
// no known category also falls back to Internship, but the id prefix records
// that the token was foreign.
func ResolveCategory(raw string) (Category, string) {
	if raw == "" {
		return CategoryInternship, idPrefixes[CategoryInternship]
	}
	c := Category(raw)
	if prefix, ok := idPrefixes[c]; ok {
		return c, prefix
	}
	return CategoryInternship, FallbackIDPrefix
}

// SubmissionStatus is assigned once when the record is created and never
// changes afterwards.
type SubmissionStatus string

const (
	SubmissionStatusSubmitted   SubmissionStatus = "Submitted"
	SubmissionStatusUnderReview SubmissionStatus = "Under Review"
)

// Submission is the durable record kept for every completed application.
type Submission struct {
	ID          string           `json:"id"`
	Category    Category         `json:"type"`
	Role        string           `json:"role"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone"`
	SubmittedAt string           `json:"date"`
	Status      SubmissionStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// ApplicantStatus describes where the applicant currently is in their career.
type ApplicantStatus string

const (
	ApplicantStatusStudent ApplicantStatus = "Student"
	ApplicantStatusFresher ApplicantStatus = "Fresher"
	ApplicantStatusWorking ApplicantStatus = "Working Professional"
)

// DeliveryMode is the applicant's preferred mode of engagement.
type DeliveryMode string

const (
	DeliveryModeOnline  DeliveryMode = "Online"
	DeliveryModeOffline DeliveryMode = "Offline"
	DeliveryModeHybrid  DeliveryMode = "Hybrid"
)

// FormFields is the closed set of inputs collected by the application form.
type FormFields struct {
	FullName  string          `json:"fullName"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	WhatsApp  string          `json:"whatsapp"`
	City      string          `json:"city"`
	Status    ApplicantStatus `json:"status"`
	College   string          `json:"college"`
	Degree    string          `json:"degree"`
	Year      string          `json:"year"`
	Mode      DeliveryMode    `json:"mode"`
	StartDate string          `json:"startDate"`
	Source    string          `json:"source"`
	Reason    string          `json:"reason"`
}

// DefaultFormFields returns the field set a fresh session starts from.
func DefaultFormFields() FormFields {
	return FormFields{
		Status: ApplicantStatusStudent,
		Mode:   DeliveryModeOnline,
		Source: "Website",
	}
}

// Form steps, in order. Confirmation is terminal.
const (
	StepPersonal     = 1
	StepBackground   = 2
	StepReview       = 3
	StepConfirmation = 4
)

// SessionContext pins down what the applicant is applying for. RawCategory
// keeps the token exactly as the client sent it so id generation can apply
// the fallback prefix policy.
type SessionContext struct {
	Role        string `json:"role"`
	RawCategory string `json:"category"`
}

// SubmissionResult is attached to a session once it reaches the confirmation
// step. Persisted is false when the store was unavailable; the submission is
// still fully formed in that case.
type SubmissionResult struct {
	Submission Submission `json:"submission"`
	Persisted  bool       `json:"persisted"`
}

// FormSession is one in-flight run through the application form.
type FormSession struct {
	ID          string            `json:"id"`
	Step        int               `json:"step"`
	Context     SessionContext    `json:"context"`
	Fields      FormFields        `json:"fields"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	Result      *SubmissionResult `json:"result,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Terminal reports whether the session has produced its submission.
func (s FormSession) Terminal() bool {
	return s.Step >= StepConfirmation
}

// Pagination carries cursor paging inputs through service and repository
// calls.
type Pagination struct {
	PageSize  int
	PageToken string
}

// CursorPage is a single page of results plus the token for the next one.
type CursorPage[T any] struct {
	Items         []T
	NextPageToken string
}
