package promptsmith

import "strings"

// OtherPosition is the position entry that reveals a free-text role field.
const OtherPosition = "Other"

// DefaultPositions is the role list offered when none is configured.
var DefaultPositions = []string{
	"Software Engineer",
	"Data Scientist",
	"Product Manager",
	"UX Designer",
	"Marketing Manager",
	"Sales Representative",
	"Teacher",
	"Researcher",
	"Writer",
	"Student",
	OtherPosition,
}

// ResolveRole returns the role to send: the trimmed custom text when the
// selection is OtherPosition, the selection otherwise.
func ResolveRole(selected, custom string) string {
	if selected == OtherPosition {
		return strings.TrimSpace(custom)
	}
	return selected
}

// CanGenerate reports whether the generate action is enabled. It depends on
// its three arguments only.
func CanGenerate(hasCredential bool, role, task string) bool {
	return hasCredential && strings.TrimSpace(role) != "" && strings.TrimSpace(task) != ""
}
