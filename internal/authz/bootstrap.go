package authz

import (
	"fmt"

	"github.com/quickshop-api/quickshop/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵。
// 仅管理端路由走 casbin 判定，普通用户路由只依赖 JWT 鉴权。
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleAdmin,
			Policies: []Policy{
				{Object: "/users/allUsers", Action: "GET"},
				{Object: "/users/delete/:id", Action: "DELETE"},
				{Object: "/products", Action: "POST"},
				{Object: "/products/:id", Action: "PUT"},
				{Object: "/products/:id", Action: "DELETE"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	changed := false
	for _, seed := range BuiltinRoleSeeds() {
		subject := SubjectForRole(seed.Role)
		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			added, err := s.enforcer.AddPolicy(subject, NormalizeObject(policy.Object), action)
			if err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
			if added {
				changed = true
			}
		}
	}

	if changed {
		return s.enforcer.LoadPolicy()
	}
	return nil
}
