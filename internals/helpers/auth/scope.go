// file: internals/helpers/auth/scope.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Kunci Locals (diisi middleware AuthJWT)
const (
	LocUserID      = "user_id"
	LocTeacherID   = "teacher_id"
	LocBranchID    = "branch_id"
	LocRolesGlobal = "roles_global"
)

// HeaderBranchID: fallback scoping untuk klien admin lama (x-branch-id)
const HeaderBranchID = "x-branch-id"

func uuidFromLocals(c *fiber.Ctx, key string) (uuid.UUID, bool) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, false
	}
	s, ok := v.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetBranchIDFromToken: scope tenant wajib ada — dari klaim token,
// fallback header x-branch-id. Handler meneruskan nilai ini secara
// eksplisit ke semua query (tidak ada scope ambient).
func GetBranchIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	if id, ok := uuidFromLocals(c, LocBranchID); ok {
		return id, nil
	}
	if raw := strings.TrimSpace(c.Get(HeaderBranchID)); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "x-branch-id tidak valid")
		}
		return id, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Scope cabang tidak ditemukan di token")
}

// GetTeacherIDFromToken: id guru dari klaim token (untuk aksi marking).
func GetTeacherIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	if id, ok := uuidFromLocals(c, LocTeacherID); ok {
		return id, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "teacher_id tidak ditemukan di token")
}

// ResolveTeacherID: query param ?teacher_id= (admin melihat guru lain),
// fallback klaim token.
func ResolveTeacherID(c *fiber.Ctx) (uuid.UUID, error) {
	if raw := strings.TrimSpace(c.Query("teacher_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "teacher_id tidak valid")
		}
		return id, nil
	}
	return GetTeacherIDFromToken(c)
}

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	if id, ok := uuidFromLocals(c, LocUserID); ok {
		return id, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak ditemukan di token")
}
