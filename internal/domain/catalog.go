package domain

// Catalog content served by the marketing site. These records are static
// editorial data, not user input.

type ServiceOffering struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Internship struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Duration    string `json:"duration"`
	Mode        string `json:"mode"`
	Description string `json:"description"`
}

type Job struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Type             string   `json:"type"`
	Location         string   `json:"location"`
	Description      string   `json:"description"`
	Tags             []string `json:"tags"`
	Perks            string   `json:"perks"`
	Responsibilities []string `json:"responsibilities"`
}

type Course struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Level    string   `json:"level"`
	Duration string   `json:"duration"`
	Features []string `json:"features"`
}

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type Workshop struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Mode        string `json:"mode"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Testimonial struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	Quote  string  `json:"quote"`
	Rating float64 `json:"rating"`
}

// OpenRole is a flattened entry for the apply form's role picker.
type OpenRole struct {
	Category Category `json:"category"`
	Title    string   `json:"title"`
}
