package pkgmanager

// Manager identifies the package manager driving a JavaScript workspace.
type Manager string

const (
	Npm     Manager = "npm"
	Pnpm    Manager = "pnpm"
	Yarn    Manager = "yarn"
	Bun     Manager = "bun"
	Unknown Manager = "unknown"
)

// String returns the manager's command name.
func (m Manager) String() string {
	if m == "" {
		return string(Unknown)
	}
	return string(m)
}

// Supported reports whether the manager can execute installs.
func (m Manager) Supported() bool {
	switch m {
	case Npm, Pnpm, Yarn, Bun:
		return true
	}
	return false
}
