package models

// CV is the résumé shown on the site. It lives in a YAML data file next to
// the content, not in the database.
type CV struct {
	Profile        Profile         `json:"profile" yaml:"profile"`
	Experience     []Experience    `json:"experience" yaml:"experience"`
	Education      []Education     `json:"education" yaml:"education"`
	Skills         []Skill         `json:"skills" yaml:"skills"`
	Certifications []Certification `json:"certifications,omitempty" yaml:"certifications,omitempty"`
}

type Profile struct {
	Name     string            `json:"name" yaml:"name"`
	Headline string            `json:"headline" yaml:"headline"`
	Summary  string            `json:"summary,omitempty" yaml:"summary,omitempty"`
	Location *string           `json:"location,omitempty" yaml:"location,omitempty"`
	Links    map[string]string `json:"links,omitempty" yaml:"links,omitempty"`
}

type Experience struct {
	Company   string   `json:"company" yaml:"company"`
	Role      string   `json:"role" yaml:"role"`
	StartDate string   `json:"start_date" yaml:"start_date"`
	EndDate   *string  `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Bullets   []string `json:"bullets,omitempty" yaml:"bullets,omitempty"`
}

type Education struct {
	Institution  string  `json:"institution" yaml:"institution"`
	Degree       string  `json:"degree" yaml:"degree"`
	FieldOfStudy *string `json:"field_of_study,omitempty" yaml:"field_of_study,omitempty"`
	StartDate    string  `json:"start_date" yaml:"start_date"`
	EndDate      *string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
}

type Skill struct {
	Name  string  `json:"name" yaml:"name"`
	Level *string `json:"level,omitempty" yaml:"level,omitempty"`
}

type Certification struct {
	Name   string  `json:"name" yaml:"name"`
	Issuer string  `json:"issuer" yaml:"issuer"`
	Year   *int    `json:"year,omitempty" yaml:"year,omitempty"`
	URL    *string `json:"url,omitempty" yaml:"url,omitempty"`
}
