package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // pakai cookie access_token jika tidak ada Bearer
}

func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		// 1) Ambil token: Authorization: Bearer xxx (atau cookie jika diizinkan)
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		// 2) Parse + verifikasi algoritma
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		c.Locals("jwt_claims", claims)

		// === HYDRATE LOCALS ===

		if v, ok := claims["roles_global"]; ok {
			c.Locals(helperAuth.LocRolesGlobal, v)
		}

		// branch_id → scope tenant (single branch per sesi)
		if bid := strClaim(claims, "branch_id"); bid != "" {
			c.Locals(helperAuth.LocBranchID, bid)
		}

		if tid := strClaim(claims, "teacher_id"); tid != "" {
			c.Locals(helperAuth.LocTeacherID, tid)
		}

		// user_id: ambil id/sub/user_id dalam urutan preferensi
		switch {
		case strClaim(claims, "id") != "":
			c.Locals(helperAuth.LocUserID, strClaim(claims, "id"))
		case strClaim(claims, "sub") != "":
			c.Locals(helperAuth.LocUserID, strClaim(claims, "sub"))
		case strClaim(claims, "user_id") != "":
			c.Locals(helperAuth.LocUserID, strClaim(claims, "user_id"))
		}

		return c.Next()
	}
}

func strClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// RequireAdmin: cek roles_global berisi "admin" (grup /api/a)
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		v := c.Locals(helperAuth.LocRolesGlobal)
		if hasRole(v, "admin") || hasRole(v, "owner") {
			return c.Next()
		}
		return fiber.NewError(fiber.StatusForbidden, "Hanya admin yang boleh mengakses")
	}
}

// RequireTeacher: guru atau admin (grup /api/t)
func RequireTeacher() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(helperAuth.LocTeacherID) != nil {
			return c.Next()
		}
		v := c.Locals(helperAuth.LocRolesGlobal)
		if hasRole(v, "teacher") || hasRole(v, "admin") || hasRole(v, "owner") {
			return c.Next()
		}
		return fiber.NewError(fiber.StatusForbidden, "Hanya guru yang boleh mengakses")
	}
}

func hasRole(v any, want string) bool {
	switch arr := v.(type) {
	case []string:
		for _, r := range arr {
			if strings.EqualFold(strings.TrimSpace(r), want) {
				return true
			}
		}
	case []interface{}:
		for _, it := range arr {
			if s, ok := it.(string); ok && strings.EqualFold(strings.TrimSpace(s), want) {
				return true
			}
		}
	case string:
		return strings.EqualFold(strings.TrimSpace(arr), want)
	}
	return false
}
