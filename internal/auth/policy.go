package auth

import (
	"cms/internal/errors"
	"cms/internal/model"
)

// Action is a permitted operation on the content collection or an object.
type Action string

const (
	ActionGet    Action = "GET"
	ActionPost   Action = "POST"
	ActionPut    Action = "PUT"
	ActionDelete Action = "DELETE"
)

// objectActions lists the methods subject to the whole-object ownership check.
// Any method outside this table is denied outright.
var objectActions = map[Action]bool{
	ActionGet:    true,
	ActionPost:   true,
	ActionPut:    true,
	ActionDelete: true,
}

// CanManageCollection reports whether the user may create content. A super
// admin needs the superuser flag in addition to the role; an author only needs
// the role. Inactive users are always rejected.
func CanManageCollection(user *model.User) bool {
	if user == nil || !user.IsActive {
		return false
	}
	switch user.Role.Name {
	case model.RoleSuperAdmin:
		return user.IsSuperuser
	case model.RoleAuthor:
		return true
	default:
		return false
	}
}

// CanAccessObject applies the object-level policy: an active superuser or the
// item's own author may act on it. Methods outside the table fail closed.
func CanAccessObject(user *model.User, item *model.ContentItem, action Action) error {
	if !objectActions[action] {
		return errors.ErrPermissionDenied
	}
	if user == nil {
		return errors.ErrContentForbidden
	}
	if user.IsSuperuser && user.IsActive {
		return nil
	}
	if item != nil && item.AuthorID == user.ID {
		return nil
	}
	return errors.ErrContentForbidden
}
