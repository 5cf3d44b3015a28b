package domain

type Role string

const (
	// Participant can browse events and manage their own profile
	RoleParticipant Role = "participant"
	// Admin users can create and delete events, pull reports and use the AI tools
	RoleAdmin Role = "admin"
)

func IsValidRole(r string) bool {
	return r == string(RoleParticipant) || r == string(RoleAdmin)
}
