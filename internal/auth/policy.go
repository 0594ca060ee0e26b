package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

var ErrForbidden = errors.New("forbidden")

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

// ValidRole reports whether role is one of the known role names.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin || role == RoleSuperAdmin
}

// Policy centralizes the access decisions shared by handlers and services.
type Policy struct{}

// CanAdminister reports whether a role carries administrative rights.
func (p *Policy) CanAdminister(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// IsOwner reports whether the user owns the resource.
func (p *Policy) IsOwner(userID, ownerID int64) bool {
	return userID == ownerID
}

// CanViewRequest allows the owner of a request or any administrator.
func (p *Policy) CanViewRequest(u *User, ownerID int64) error {
	if u == nil {
		return ErrForbidden
	}
	if p.CanAdminister(u.Role) || p.IsOwner(u.ID, ownerID) {
		return nil
	}
	return ErrForbidden
}

// CanManageUsers allows role changes only for superadmins and admins, and
// never lets an admin touch a superadmin account.
func (p *Policy) CanManageUsers(u *User, targetRole string) error {
	if u == nil || !p.CanAdminister(u.Role) {
		return ErrForbidden
	}
	if targetRole == RoleSuperAdmin && u.Role != RoleSuperAdmin {
		return ErrForbidden
	}
	return nil
}

// RequireAdmin rejects requests from non-administrative principals.
func (p *Policy) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok || u == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !p.CanAdminister(u.Role) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePolicy is a generic middleware wrapper that runs an access check function.
func RequirePolicy(policy *Policy, check func(p *Policy, u *User, r *http.Request) error) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok || u == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if err := check(policy, u, r); err != nil {
				if errors.Is(err, ErrForbidden) {
					http.Error(w, "forbidden", http.StatusForbidden)
					return
				}
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireCanViewRequest builds a middleware that lets a request through only
// for the request's owner or an administrator.
func RequireCanViewRequest(db *sqlx.DB, policy *Policy) func(next http.Handler) http.Handler {
	return requireRequestOwner(policy, func(ctx context.Context, id int64) (int64, error) {
		var ownerID int64
		err := db.GetContext(ctx, &ownerID, "SELECT user_id FROM requests WHERE id=$1", id)
		return ownerID, err
	})
}

func requireRequestOwner(policy *Policy, lookupOwner func(ctx context.Context, id int64) (int64, error)) func(next http.Handler) http.Handler {
	return RequirePolicy(policy, func(p *Policy, u *User, r *http.Request) error {
		idStr := chi.URLParam(r, "id")
		if idStr == "" {
			return ErrForbidden
		}
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return err
		}

		ownerID, err := lookupOwner(r.Context(), id)
		if err != nil {
			// An absent request is not an access decision, it falls
			// through so the handler can answer not found.
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}
		return p.CanViewRequest(u, ownerID)
	})
}
