package domain

// Role 闭合枚举，能力统一收口在这里，避免各接口散落字符串比较
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// CanModerate 审核能力：moderator 和 admin
func (r Role) CanModerate() bool { return r == RoleModerator || r == RoleAdmin }

// BypassesOwnership 越过归属校验：只有 admin（moderator 故意不在内）
func (r Role) BypassesOwnership() bool { return r == RoleAdmin }

// CanMutate 归属判定：作者本人，或 admin
func CanMutate(authorID, actorID string, role Role) bool {
	return authorID == actorID || role.BypassesOwnership()
}
