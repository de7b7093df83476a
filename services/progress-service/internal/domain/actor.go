package domain

const (
	RoleLearner = "learner"
	RoleAdmin   = "admin"
)

// Actor - текущий пользователь, уже аутентифицированный шлюзом.
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanActFor: админ работает с любыми записями, остальные - только со своими.
func (a Actor) CanActFor(userID uint) bool {
	return a.IsAdmin() || a.UserID == userID
}
