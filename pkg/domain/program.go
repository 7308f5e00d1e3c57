package domain

// Placeholder is rendered in place of any missing optional display field.
const Placeholder = "-"

// Default call-to-action copy used when the widget does not override it.
const (
	DefaultWidgetTitle  = "Apply Now"
	DefaultPrimaryLabel = "Start Application"
	CallLabel           = "Schedule a Call"
)

// ProgramSummary is a catalog list item as returned by the content source.
type ProgramSummary struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Subtitle    string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Description string   `json:"description" yaml:"description"`
	Duration    string   `json:"duration,omitempty" yaml:"duration,omitempty"`
	Funding     string   `json:"funding,omitempty" yaml:"funding,omitempty"`
	CohortSize  string   `json:"cohortSize,omitempty" yaml:"cohortSize,omitempty"`
	Features    []string `json:"features,omitempty" yaml:"features,omitempty"`
}

// ProgramDetail is a single program with its optional call-to-action widget.
// The long-form sections are optional and rendered only when present.
type ProgramDetail struct {
	ProgramSummary `yaml:",inline"`
	Overview       string           `json:"overview,omitempty" yaml:"overview,omitempty"`
	Curriculum     []CurriculumItem `json:"curriculum,omitempty" yaml:"curriculum,omitempty"`
	Mentors        []Mentor         `json:"mentors,omitempty" yaml:"mentors,omitempty"`
	Outcomes       []string         `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`
	Widget         *Widget          `json:"widget,omitempty" yaml:"widget,omitempty"`
}

// CurriculumItem is one block of the program schedule, e.g. "Weeks 1-2".
type CurriculumItem struct {
	Week        string `json:"week" yaml:"week"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Mentor is a program mentor.
type Mentor struct {
	Name      string `json:"name" yaml:"name"`
	Role      string `json:"role,omitempty" yaml:"role,omitempty"`
	Expertise string `json:"expertise,omitempty" yaml:"expertise,omitempty"`
}

// ProgramList is the envelope of the list endpoint.
type ProgramList struct {
	Data []ProgramSummary `json:"data"`
}

// Widget configures the call-to-action panel of a program detail.
// Every field is an opaque display string; none is parsed.
type Widget struct {
	Title           string `json:"title,omitempty" yaml:"title,omitempty"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty"`
	ApplicationTime string `json:"applicationTime,omitempty" yaml:"applicationTime,omitempty"`
	NextEventDate   string `json:"nextEventDate,omitempty" yaml:"nextEventDate,omitempty"`
	ButtonText      string `json:"buttonText,omitempty" yaml:"buttonText,omitempty"`
	ButtonLink      string `json:"buttonLink,omitempty" yaml:"buttonLink,omitempty"`
	CallLink        string `json:"callLink,omitempty" yaml:"callLink,omitempty"`
}

// OrPlaceholder returns s, or Placeholder when s is empty.
func OrPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

// Stats returns duration, funding and cohort size with placeholders applied.
func (p ProgramSummary) Stats() (duration, funding, cohort string) {
	return OrPlaceholder(p.Duration), OrPlaceholder(p.Funding), OrPlaceholder(p.CohortSize)
}

// The accessors below are safe on a nil *Widget.

// PanelTitle returns the widget title or DefaultWidgetTitle.
func (w *Widget) PanelTitle() string {
	if w == nil || w.Title == "" {
		return DefaultWidgetTitle
	}
	return w.Title
}

// PanelDescription returns the widget description or Placeholder.
func (w *Widget) PanelDescription() string {
	if w == nil {
		return Placeholder
	}
	return OrPlaceholder(w.Description)
}

// ApplicationTimeText returns the application time display string or Placeholder.
func (w *Widget) ApplicationTimeText() string {
	if w == nil {
		return Placeholder
	}
	return OrPlaceholder(w.ApplicationTime)
}

// NextEventText returns the next event display string or Placeholder.
func (w *Widget) NextEventText() string {
	if w == nil {
		return Placeholder
	}
	return OrPlaceholder(w.NextEventDate)
}

// PrimaryLabel returns the button text or DefaultPrimaryLabel.
func (w *Widget) PrimaryLabel() string {
	if w == nil || w.ButtonText == "" {
		return DefaultPrimaryLabel
	}
	return w.ButtonText
}

// PrimaryLink returns the primary action link, empty when absent.
func (w *Widget) PrimaryLink() string {
	if w == nil {
		return ""
	}
	return w.ButtonLink
}

// ScheduleLink returns the call-scheduling link, empty when absent.
func (w *Widget) ScheduleLink() string {
	if w == nil {
		return ""
	}
	return w.CallLink
}

// HasPrimaryAction reports whether the primary action can be offered.
func (w *Widget) HasPrimaryAction() bool {
	return w.PrimaryLink() != ""
}

// HasCallAction reports whether the call-scheduling action can be offered.
func (w *Widget) HasCallAction() bool {
	return w.ScheduleLink() != ""
}
