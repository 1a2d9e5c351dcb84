package app

import (
	"errors"
	"net/http"

	"github.com/dailyspends/dailyspends/internal/database"
	"github.com/dailyspends/dailyspends/internal/rest"
	"github.com/dailyspends/dailyspends/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const userIdHeader = "X-User-Id"

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {
	r.Use(userMiddleware(deps.UserService))
}

// userMiddleware resolves the X-User-Id header into the request's user. Requests without the
// header carry no user, and operations needing one fail later with 401.
func userMiddleware(users user.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			uid := req.Header.Get(userIdHeader)
			ctx := req.Context()

			if uid != "" {
				u, err := users.GetUserByUid(ctx, uid)
				switch {
				case errors.Is(err, user.ErrUserNotFound):
					log.Debugf("user not found: %s", uid)
					rest.WriteError(w, http.StatusForbidden, "User not found", "")
					return
				case errors.Is(err, database.ErrUnavailable):
					rest.WriteError(w, http.StatusServiceUnavailable, "User store unavailable", "")
					return
				case err != nil:
					log.Errorf("failed to get user: %v", err)
					rest.WriteError(w, http.StatusBadRequest, "Invalid user", err.Error())
					return
				}
				log.Tracef("user found: %s", u.Uid)
				ctx = user.WithUser(ctx, u)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}
