package content

import "html/template"

// Kind tags what a panel is for. Panels are opaque to the page stack; the
// kind only picks a layout in the page shell.
type Kind string

const (
	KindHero         Kind = "hero"
	KindCover        Kind = "cover"
	KindProse        Kind = "prose"
	KindList         Kind = "list"
	KindGallery      Kind = "gallery"
	KindProcess      Kind = "process"
	KindTheater      Kind = "theater"
	KindTimeline     Kind = "timeline"
	KindConnect      Kind = "connect"
	KindTestimonials Kind = "testimonials"
	KindContact      Kind = "contact"
)

// Item is one entry inside a panel: a pencil grade, a gallery piece, a
// timeline year, a testimonial.
type Item struct {
	Label  string `yaml:"label" json:"label"`
	Value  string `yaml:"value,omitempty" json:"value,omitempty"`
	Detail string `yaml:"detail,omitempty" json:"detail,omitempty"`
	Image  string `yaml:"image,omitempty" json:"image,omitempty"`
}

// Section is one page of the stack.
type Section struct {
	ID       string        `yaml:"id" json:"id"`
	Title    string        `yaml:"title" json:"title"`
	Kind     Kind          `yaml:"kind" json:"kind"`
	Order    int           `yaml:"order" json:"order"`
	Subtitle string        `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Dark     bool          `yaml:"dark,omitempty" json:"dark,omitempty"`
	Items    []Item        `yaml:"items,omitempty" json:"items,omitempty"`
	Body     string        `yaml:"-" json:"-"`
	HTML     template.HTML `yaml:"-" json:"html"`
	Source   string        `yaml:"-" json:"source,omitempty"`
}
