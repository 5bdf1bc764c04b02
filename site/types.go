package site

// Descriptor is the whole site configuration handed to the generator.
// A loaded descriptor is never mutated and may be shared between goroutines.
type Descriptor struct {
	Title       string `json:"title" yaml:"title" toml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	LastUpdated bool   `json:"lastUpdated" yaml:"lastUpdated" toml:"lastUpdated"`
	ThemeConfig Theme  `json:"themeConfig" yaml:"themeConfig" toml:"themeConfig"`
}

// Theme holds the navigation structure.
type Theme struct {
	Logo            string       `json:"logo,omitempty" yaml:"logo,omitempty" toml:"logo,omitempty"`
	LastUpdatedText string       `json:"lastUpdatedText,omitempty" yaml:"lastUpdatedText,omitempty" toml:"lastUpdatedText,omitempty"`
	Nav             []NavItem    `json:"nav" yaml:"nav" toml:"nav"`
	SocialLinks     []SocialLink `json:"socialLinks" yaml:"socialLinks" toml:"socialLinks"`
	Sidebar         SidebarMap   `json:"sidebar" yaml:"sidebar" toml:"sidebar"`
}

// SiteMeta is the site-wide metadata of a descriptor.
type SiteMeta struct {
	Title           string
	Description     string
	LastUpdated     bool   // show last-updated timestamps on pages
	LastUpdatedText string // label shown next to the timestamp
}

// NavItem is an entry of the top navigation bar.
type NavItem struct {
	Text string `json:"text" yaml:"text" toml:"text"`
	Link string `json:"link" yaml:"link" toml:"link"`
}

// SocialLink is an icon linking to an external profile or repository.
type SocialLink struct {
	Icon string `json:"icon" yaml:"icon" toml:"icon"`
	Link string `json:"link" yaml:"link" toml:"link"`
}

// SidebarSection is a titled group of documents in a sidebar.
type SidebarSection struct {
	Text        string        `json:"text" yaml:"text" toml:"text"`
	Link        string        `json:"link,omitempty" yaml:"link,omitempty" toml:"link,omitempty"`
	Collapsible *bool         `json:"collapsible,omitempty" yaml:"collapsible,omitempty" toml:"collapsible,omitempty"`
	Collapsed   *bool         `json:"collapsed,omitempty" yaml:"collapsed,omitempty" toml:"collapsed,omitempty"`
	Items       []SidebarItem `json:"items" yaml:"items" toml:"items"`
}

// SidebarItem links a single markdown document.
type SidebarItem struct {
	Text string `json:"text" yaml:"text" toml:"text"`
	Link string `json:"link" yaml:"link" toml:"link"`
}

// Meta returns the site metadata.
func (d *Descriptor) Meta() SiteMeta {
	return SiteMeta{
		Title:           d.Title,
		Description:     d.Description,
		LastUpdated:     d.LastUpdated,
		LastUpdatedText: d.ThemeConfig.LastUpdatedText,
	}
}

// Bool returns a pointer to b, for the optional section flags.
func Bool(b bool) *bool {
	return &b
}
