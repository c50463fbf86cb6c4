package permissions

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Catalog lists every permission string the API knows about and the roles
// that bundle them. Routes are checked against it at registration so a typo
// can't silently lock everyone out of an operation.
type Catalog struct {
	descriptions map[string]string
	roles        map[string]Role
}

// NewCatalog loads the embedded catalog.
func NewCatalog() (*Catalog, error) {
	data, err := configFiles.ReadFile("config/catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalog from YAML and resolves role inheritance.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	if len(file.Permissions) == 0 {
		return nil, fmt.Errorf("catalog defines no permissions")
	}

	c := &Catalog{
		descriptions: file.Permissions,
		roles:        make(map[string]Role, len(file.Roles)),
	}

	for id, role := range file.Roles {
		role.ID = id
		for _, p := range role.Permissions {
			if _, ok := c.descriptions[p]; !ok {
				return nil, fmt.Errorf("role %s grants unknown permission %q", id, p)
			}
		}
		c.roles[id] = role
	}

	for id := range c.roles {
		resolved, err := c.resolve(id, map[string]bool{})
		if err != nil {
			return nil, err
		}
		role := c.roles[id]
		role.Permissions = resolved
		c.roles[id] = role
	}

	return c, nil
}

// resolve flattens a role's own and inherited permissions.
func (c *Catalog) resolve(id string, seen map[string]bool) ([]string, error) {
	if seen[id] {
		return nil, fmt.Errorf("role inheritance cycle at %s", id)
	}
	seen[id] = true

	role, ok := c.roles[id]
	if !ok {
		return nil, fmt.Errorf("unknown role %s", id)
	}

	set := make(map[string]struct{})
	for _, p := range role.Permissions {
		set[p] = struct{}{}
	}
	if role.Inherits != "" {
		parent, err := c.resolve(role.Inherits, seen)
		if err != nil {
			return nil, err
		}
		for _, p := range parent {
			set[p] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

// Describe returns the human description of a permission. ok is false for
// an undefined permission; matching is exact and case-sensitive.
func (c *Catalog) Describe(permission string) (string, bool) {
	d, ok := c.descriptions[permission]
	return d, ok
}

// Roles returns every role with inherited permissions flattened in, sorted
// by ID.
func (c *Catalog) Roles() []Role {
	out := make([]Role, 0, len(c.roles))
	for _, role := range c.roles {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Permissions returns all defined permission strings, sorted.
func (c *Catalog) Permissions() []string {
	out := make([]string, 0, len(c.descriptions))
	for p := range c.descriptions {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
