package permissions

// Role is a named bundle of permissions as configured at the identity provider.
type Role struct {
	// Role identifier (set during YAML unmarshaling)
	ID string `yaml:"-" json:"id"`

	DisplayName string   `yaml:"display_name" json:"display_name"`
	Inherits    string   `yaml:"inherits" json:"inherits,omitempty"`
	Permissions []string `yaml:"permissions" json:"permissions"`
}

// catalogFile is the on-disk layout of config/catalog.yaml
type catalogFile struct {
	Permissions map[string]string `yaml:"permissions"`
	Roles       map[string]Role   `yaml:"roles"`
}
