// Package content holds the portfolio copy and the element handles the
// motion regions measure.
package content

import "fmt"

// Section handles. Nav ids are the fragment names.
const (
	Hero     = "home"
	About    = "about"
	Skills   = "skills"
	Projects = "projects"
	Contact  = "contact"

	AboutIllustration = "about-illustration"
	ProjectsStage     = "projects-stage"
	ProjectsCard      = "projects-card"
	ContactForm       = "contact-form"
)

// SkillIcon is the handle of the i-th skill card icon.
func SkillIcon(i int) string { return fmt.Sprintf("skill-%d", i) }

// Section is one page section.
type Section struct {
	ID    string
	Title string
	Key   string // jump key
	Lead  string
	Body  []string
}

var Sections = []Section{
	{
		ID:    Hero,
		Title: "Home",
		Key:   "1",
		Lead:  "Hello, I build for the web.",
		Body: []string{
			"Full-stack developer and frontend engineer.",
			"I design and build web applications from the database to the",
			"interface, and care about speed, accessibility and clean code at",
			"every layer.",
		},
	},
	{
		ID:    About,
		Title: "About",
		Key:   "2",
		Lead:  "Motion with a purpose.",
		Body: []string{
			"I like interfaces that respond: a page that settles when you stop,",
			"cards that lean toward the pointer, sections that fade in as you",
			"arrive instead of snapping into place.",
			"Most of my work sits where product thinking meets the details",
			"of how things move.",
		},
	},
	{
		ID:    Skills,
		Title: "Skills",
		Key:   "3",
		Lead:  "Skills & Tools",
	},
	{
		ID:    Projects,
		Title: "Projects",
		Key:   "4",
		Lead:  "My Projects",
		Body: []string{
			"Drag the cards, or use ← and →.",
		},
	},
	{
		ID:    Contact,
		Title: "Contact",
		Key:   "5",
		Lead:  "Let's Connect",
		Body: []string{
			"Got a project in mind, a question, or just want to say hi?",
			"I'd love to hear from you.",
		},
	},
}

// Glyphs float beside the about text, one per jitter channel.
var Glyphs = []string{"{ }", "< >", ">_"}

// Skill is one skill card.
type Skill struct {
	Name        string
	Color       string
	Description string
}

var SkillList = []Skill{
	{Name: "HTML", Color: "#E44D26", Description: "Semantic, accessible markup"},
	{Name: "CSS", Color: "#1572B6", Description: "Responsive layouts that hold up"},
	{Name: "Sass", Color: "#CC6699", Description: "Modular styles with mixins"},
	{Name: "JavaScript", Color: "#F7DF1E", Description: "Interactive logic, kept clean"},
	{Name: "React", Color: "#61DAFB", Description: "Component-driven interfaces"},
	{Name: "Node.js", Color: "#68A063", Description: "Fast backend APIs"},
	{Name: "Go", Color: "#00ADD8", Description: "Services and command-line tools"},
	{Name: "Python", Color: "#3776AB", Description: "Scripts and automation"},
	{Name: "Git", Color: "#F05032", Description: "Version control and review"},
	{Name: "Figma", Color: "#F24E1E", Description: "Design and prototyping"},
}

// Project is one carousel card.
type Project struct {
	Title   string
	Summary string
	Site    string
	Code    string
	Design  string
}

var ProjectList = []Project{
	{Title: "Project One", Summary: "A storefront with a scroll-driven product tour."},
	{Title: "Project Two", Summary: "Realtime dashboard for a fleet of sensors."},
	{Title: "Project Three", Summary: "Design system and component library."},
	{Title: "Project Four", Summary: "Booking flow rebuilt for mobile first."},
	{Title: "Project Five", Summary: "A small mail relay and its admin view."},
}

// IndexOf returns the position of a section id, or -1.
func IndexOf(id string) int {
	for i, s := range Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}
