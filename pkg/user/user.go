package user

import (
	"errors"
	"regexp"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserDataInvalid = errors.New("invalid user data")

var uidPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type User struct {
	Id          int
	Uid         string
	Email       string
	DisplayName string
}

// ValidUid reports whether uid is safe to use as a single path segment.
func ValidUid(uid string) bool {
	return uidPattern.MatchString(uid)
}
