package rewrite

// Role is a column the rewriter knows how to fill.
type Role int

const (
	RoleBrand Role = iota
	RoleName
	RoleDescription
)

// Header returns the exact header text that identifies the role.
func (r Role) Header() string {
	switch r {
	case RoleBrand:
		return "Бренд"
	case RoleName:
		return "Название"
	case RoleDescription:
		return "Описание"
	}
	return ""
}

func (r Role) String() string {
	switch r {
	case RoleBrand:
		return "brand"
	case RoleName:
		return "name"
	case RoleDescription:
		return "description"
	}
	return "unknown"
}

var roles = []Role{RoleBrand, RoleName, RoleDescription}

// Columns maps each role to its 1-based column index; 0 means the header is absent.
type Columns struct {
	index [3]int
}

// ResolveColumns finds the first header cell matching each role exactly.
func ResolveColumns(headers []string) Columns {
	var c Columns
	for _, role := range roles {
		for i, h := range headers {
			if h == role.Header() {
				c.index[role] = i + 1
				break
			}
		}
	}
	return c
}

// Index returns the column of role and whether it was found.
func (c Columns) Index(role Role) (int, bool) {
	col := c.index[role]
	return col, col > 0
}

// Empty reports whether no role was resolved.
func (c Columns) Empty() bool {
	for _, col := range c.index {
		if col > 0 {
			return false
		}
	}
	return true
}
