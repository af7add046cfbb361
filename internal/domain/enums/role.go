package enums

type Role string

const (
	RoleMember  Role = "member"
	RoleCurator Role = "curator"
	RoleOwner   Role = "owner"
)

func (r Role) IsStaff() bool {
	return r == RoleCurator || r == RoleOwner
}
