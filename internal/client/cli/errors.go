package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cateringplus/internal/client/client"
	"github.com/dmitrijs2005/cateringplus/internal/client/services"
)

// errUsage marks a malformed command line.
var errUsage = errors.New("usage")

func usage(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// describe turns an error from any layer into the one line shown to the user.
func describe(err error) string {
	var (
		verr   *services.ValidationError
		apiErr *client.APIError
		netErr *client.NetworkError
		auth   *services.AuthError
	)
	switch {
	case errors.As(err, &verr):
		parts := make([]string, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			parts = append(parts, f.Field+" "+f.Message)
		}
		return "please check your input: " + strings.Join(parts, ", ")
	case errors.As(err, &auth) && errors.Is(err, client.ErrUnauthorized):
		return "login failed: invalid email or password"
	case errors.As(err, &netErr):
		return "server unavailable, please try again later"
	case errors.Is(err, client.ErrUnauthorized):
		return "not authorized, please log in again"
	case errors.As(err, &apiErr):
		switch {
		case apiErr.Message != "":
			return fmt.Sprintf("server rejected the request (%d): %s", apiErr.StatusCode, apiErr.Message)
		case apiErr.Body != "":
			return fmt.Sprintf("server rejected the request (%d): %s", apiErr.StatusCode, apiErr.Body)
		}
		return fmt.Sprintf("server rejected the request (%d)", apiErr.StatusCode)
	case errors.Is(err, services.ErrUnknownCategory):
		return "no such category, run 'categories' first"
	default:
		return err.Error()
	}
}
