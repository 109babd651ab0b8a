// Package permission holds the mutation access rules. Listing is
// intentionally unrestricted for authenticated callers; these rules
// gate edits and deletes only.
package permission

import (
	"github.com/avolkonsky/taskboard-api/internal/auth"
	"github.com/avolkonsky/taskboard-api/internal/model"
)

type policy int

const (
	allow policy = iota
	ownerOnly
)

// taskRules is evaluated top to bottom, first matching role wins.
// Precedence: admin, then manager, then everyone else via fallback.
var taskRules = []struct {
	role   auth.Role
	edit   policy
	delete policy
}{
	{role: auth.RoleAdmin, edit: allow, delete: allow},
	{role: auth.RoleManager, edit: allow, delete: ownerOnly},
}

var fallbackRule = struct{ edit, delete policy }{edit: ownerOnly, delete: ownerOnly}

func decide(p policy, principal *auth.Principal, task model.Task) bool {
	if p == allow {
		return true
	}
	return task.Owner.ID == principal.ID
}

func CanEditTask(principal *auth.Principal, task model.Task) bool {
	if principal == nil {
		return false
	}
	for _, rule := range taskRules {
		if principal.Roles.Has(rule.role) {
			return decide(rule.edit, principal, task)
		}
	}
	return decide(fallbackRule.edit, principal, task)
}

func CanDeleteTask(principal *auth.Principal, task model.Task) bool {
	if principal == nil {
		return false
	}
	for _, rule := range taskRules {
		if principal.Roles.Has(rule.role) {
			return decide(rule.delete, principal, task)
		}
	}
	return decide(fallbackRule.delete, principal, task)
}

// CanCreateTask is a capability check on the principal alone; it does
// not look at any task.
func CanCreateTask(principal *auth.Principal) bool {
	return principal.HasRole(auth.RoleAdmin) || principal.HasRole(auth.RoleManager)
}

// CanModifyComment is strictly author-only. Unlike task permissions
// there is no admin or manager override.
func CanModifyComment(principal *auth.Principal, comment model.Comment) bool {
	return principal != nil && comment.Author.ID == principal.ID
}
