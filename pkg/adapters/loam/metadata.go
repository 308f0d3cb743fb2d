package loam

// TilingMetadata holds the definition fields of a catalog document: the
// frontmatter of a Markdown document, or the top-level keys of a YAML or JSON
// one. The Markdown body, or a "content" key, is used as the description.
type TilingMetadata struct {
	Name        string            `json:"name" mapstructure:"name"`
	Description string            `json:"description" mapstructure:"description"`
	Angle       float64           `json:"angle" mapstructure:"angle"`
	Seed        string            `json:"seed" mapstructure:"seed"`
	Rules       map[string]string `json:"rules" mapstructure:"rules"`
}
