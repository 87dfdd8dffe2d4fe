package content

// NavLink is one entry of the floating navigation bar.
type NavLink struct {
	Label     string `json:"label"`
	SectionID string `json:"section_id"`
	Index     int    `json:"index"`
	Active    bool   `json:"active"`
}

// NavBar is the navigation bar as seen from one page.
type NavBar struct {
	Visible bool      `json:"visible"`
	Brand   string    `json:"brand"`
	Home    int       `json:"home"`
	Links   []NavLink `json:"links"`
	Active  string    `json:"active,omitempty"`
}

// navTargets are the bar's links, resolved against the stack by section id.
var navTargets = []struct {
	Label     string
	SectionID string
}{
	{"Work", "work"},
	{"Process", "theater"},
	{"Connect", "connect"},
}

// NavBar builds the navigation bar for the given current page. The bar is
// hidden on the first page; links to sections missing from the stack are
// dropped.
func (s *Stack) NavBar(brand string, current int) NavBar {
	bar := NavBar{Visible: current > 0, Brand: brand, Home: 0}
	for _, t := range navTargets {
		idx, ok := s.Index(t.SectionID)
		if !ok {
			continue
		}
		link := NavLink{Label: t.Label, SectionID: t.SectionID, Index: idx, Active: idx == current}
		if link.Active {
			bar.Active = t.Label
		}
		bar.Links = append(bar.Links, link)
	}
	return bar
}
