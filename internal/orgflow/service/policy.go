package service

import "github.com/aussiebroadwan/orgflow/internal/orgflow/domain"

// Membership mutation guards. Every path that can change an organization's
// owner count goes through CheckOwnerRetained before writing.

// CheckRoleChange decides whether caller may set target's role to role.
func CheckRoleChange(caller, target domain.Membership, role domain.Role) error {
	if !role.Valid() {
		return domain.Errorf(domain.ErrInvalid, "unknown role %q", role)
	}
	if caller.UserID == target.UserID {
		return domain.Errorf(domain.ErrForbidden, "cannot change your own role")
	}
	if err := Decide(&caller, domain.Managers); err != nil {
		return err
	}
	if target.Role == domain.RoleOwner && caller.Role != domain.RoleOwner {
		return domain.Errorf(domain.ErrInsufficientRole, "only an owner can change another owner's role")
	}
	if role == domain.RoleOwner && caller.Role != domain.RoleOwner {
		return domain.Errorf(domain.ErrInsufficientRole, "only an owner can grant ownership")
	}
	return nil
}

// CheckRemoval decides whether caller may remove target. Leaving is always
// allowed here; the owner count is checked separately.
func CheckRemoval(caller, target domain.Membership) error {
	if caller.UserID == target.UserID {
		return nil
	}
	if err := Decide(&caller, domain.Managers); err != nil {
		return err
	}
	if target.Role == domain.RoleOwner && caller.Role != domain.RoleOwner {
		return domain.Errorf(domain.ErrInsufficientRole, "only an owner can remove another owner")
	}
	return nil
}

// CheckOwnerRetained rejects a mutation that takes OWNER away from target when
// owners is the current owner count and target is the last one.
func CheckOwnerRetained(target domain.Membership, owners int) error {
	if target.Role == domain.RoleOwner && owners <= 1 {
		return domain.Errorf(domain.ErrLastOwner, "user %s is the only owner", target.UserID)
	}
	return nil
}

// CheckCommentEdit allows only the author to change a comment.
func CheckCommentEdit(caller domain.Membership, c domain.Comment) error {
	if caller.UserID != c.UserID {
		return domain.Errorf(domain.ErrForbidden, "only the author can edit this comment")
	}
	return nil
}

// CheckCommentDelete allows the author or an owner or admin to delete a
// comment.
func CheckCommentDelete(caller domain.Membership, c domain.Comment) error {
	if caller.UserID == c.UserID {
		return nil
	}
	if err := Decide(&caller, domain.Managers); err != nil {
		return domain.Errorf(domain.ErrForbidden, "only the author or an admin can delete this comment")
	}
	return nil
}
