package authz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	apiV1Prefix     = "/api/v1"
	casbinTableName = "casbin_rule"
	rolePrefix      = "role:"
)

const defaultRBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// Policy 权限策略
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

// RolePolicies 角色及其生效策略
type RolePolicies struct {
	Role     string   `json:"role"`
	Policies []Policy `json:"policies"`
}

// Service Casbin 授权服务
// 主体为用户角色（role:<name>），资源为去掉 /api/v1 前缀的路由路径
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz db is nil")
	}

	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter failed: %w", err)
	}

	m, err := model.NewModelFromString(defaultRBACModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model failed: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer failed: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy failed: %w", err)
	}

	return &Service{enforcer: enforcer}, nil
}

// Enforce 执行授权判断
func (s *Service) Enforce(sub, obj, act string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.Enforce(strings.TrimSpace(sub), NormalizeObject(obj), NormalizeAction(act))
}

// EnforceRole 按用户角色判定授权，角色为空视为拒绝
func (s *Service) EnforceRole(role, obj, act string) (bool, error) {
	subject, err := NormalizeRole(role)
	if err != nil {
		return false, nil
	}
	return s.Enforce(subject, obj, act)
}

// GrantRolePolicy 为角色授予策略，已存在时返回 false
func (s *Service) GrantRolePolicy(role, object, action string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, fmt.Errorf("authz service unavailable")
	}
	subject, err := NormalizeRole(role)
	if err != nil {
		return false, err
	}
	act := NormalizeAction(action)
	if act == "" {
		return false, fmt.Errorf("action is required")
	}
	return s.enforcer.AddPolicy(subject, NormalizeObject(object), act)
}

// InheritRole role 继承 parent 的全部策略
func (s *Service) InheritRole(role, parent string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, fmt.Errorf("authz service unavailable")
	}
	child, err := NormalizeRole(role)
	if err != nil {
		return false, err
	}
	parentRole, err := NormalizeRole(parent)
	if err != nil {
		return false, err
	}
	if child == parentRole {
		return false, fmt.Errorf("role %s cannot inherit itself", role)
	}
	return s.enforcer.AddGroupingPolicy(child, parentRole)
}

// ListRoles 已配置的角色名（不含 role: 前缀）
func (s *Service) ListRoles() ([]string, error) {
	if s == nil || s.enforcer == nil {
		return nil, fmt.Errorf("authz service unavailable")
	}
	policies, err := s.enforcer.GetFilteredPolicy(0)
	if err != nil {
		return nil, fmt.Errorf("list policies failed: %w", err)
	}
	groupings, err := s.enforcer.GetFilteredNamedGroupingPolicy("g", 0)
	if err != nil {
		return nil, fmt.Errorf("list role links failed: %w", err)
	}

	seen := make(map[string]struct{})
	collect := func(values ...string) {
		for _, value := range values {
			if strings.HasPrefix(value, rolePrefix) {
				seen[strings.TrimPrefix(value, rolePrefix)] = struct{}{}
			}
		}
	}
	for _, rule := range policies {
		if len(rule) > 0 {
			collect(rule[0])
		}
	}
	for _, rule := range groupings {
		collect(rule...)
	}

	roles := make([]string, 0, len(seen))
	for role := range seen {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles, nil
}

// GetRolePolicies 角色生效策略（含继承），Subject 为实际授予策略的角色
func (s *Service) GetRolePolicies(role string) ([]Policy, error) {
	if s == nil || s.enforcer == nil {
		return nil, fmt.Errorf("authz service unavailable")
	}
	subject, err := NormalizeRole(role)
	if err != nil {
		return nil, err
	}
	rules, err := s.enforcer.GetImplicitPermissionsForUser(subject)
	if err != nil {
		return nil, fmt.Errorf("get role policies failed: %w", err)
	}

	seen := make(map[Policy]struct{}, len(rules))
	result := make([]Policy, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		policy := Policy{
			Subject: strings.TrimPrefix(rule[0], rolePrefix),
			Object:  NormalizeObject(rule[1]),
			Action:  NormalizeAction(rule[2]),
		}
		if _, ok := seen[policy]; ok {
			continue
		}
		seen[policy] = struct{}{}
		result = append(result, policy)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Object != b.Object {
			return a.Object < b.Object
		}
		if a.Action != b.Action {
			return a.Action < b.Action
		}
		return a.Subject < b.Subject
	})
	return result, nil
}

// ListRolePolicies 全部角色及其生效策略
func (s *Service) ListRolePolicies() ([]RolePolicies, error) {
	roles, err := s.ListRoles()
	if err != nil {
		return nil, err
	}
	result := make([]RolePolicies, 0, len(roles))
	for _, role := range roles {
		policies, err := s.GetRolePolicies(role)
		if err != nil {
			return nil, err
		}
		result = append(result, RolePolicies{Role: role, Policies: policies})
	}
	return result, nil
}

// NormalizeRole admin -> role:admin；空格转下划线
func NormalizeRole(role string) (string, error) {
	name := strings.TrimPrefix(strings.TrimSpace(role), rolePrefix)
	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	if name == "" {
		return "", fmt.Errorf("role is required")
	}
	return rolePrefix + name, nil
}

// NormalizeObject 去掉 /api/v1 前缀并保证以 / 开头
func NormalizeObject(object string) string {
	path := strings.TrimSpace(object)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	path = strings.TrimPrefix(path, apiV1Prefix)
	if path == "" || !strings.HasPrefix(path, "/") {
		// /api/v1 本身，或 /api/v1x 这类非前缀匹配
		if path == "" {
			return "/"
		}
		return apiV1Prefix + path
	}
	return path
}

// NormalizeAction 统一为大写 HTTP 方法
func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}
