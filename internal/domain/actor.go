package domain

// Role роль аутентифицированного пользователя
// Приходит из доверенной identity-границы (заголовки X-User-ID / X-User-Role);
// движок не проверяет учетные данные сам
type Role string

const (
	RoleClient Role = "client"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

// Actor аутентифицированный инициатор запроса
type Actor struct {
	ID   int64
	Role Role
}

// IsPrivileged returns true for actors with administrative authority
// over reservations (staff and administrators)
func (a Actor) IsPrivileged() bool {
	return a.Role == RoleStaff || a.Role == RoleAdmin
}
