package service

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	validate.RegisterValidation("github_login", validateGitHubLogin)
}

// * ResolutionRequest is the input of one resolution, checked before any GitHub call
type ResolutionRequest struct {
	Username string `validate:"required,max=39,github_login"`
}

func (r ResolutionRequest) Validate() error {
	return validate.Struct(r)
}

// * GitHub logins: ASCII alphanumerics and hyphens, never starting with a hyphen.
// * Legacy accounts may still carry consecutive or trailing hyphens.
func validateGitHubLogin(fl validator.FieldLevel) bool {
	login := fl.Field().String()
	if login == "" || login[0] == '-' {
		return false
	}
	for i := 0; i < len(login); i++ {
		c := login[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
		default:
			return false
		}
	}
	return true
}
