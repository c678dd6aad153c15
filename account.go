package truesocks

import (
	"time"

	"github.com/truesocks/client-go/internal/api"
)

// AccountStatus describes the account behind the API key.
type AccountStatus struct {
	Created time.Time
	UserID  string
	Email   string
	Active  bool
	Plan    string
	// Expires is when the remaining credits expire.
	Expires time.Time
	// Credits left in the account.
	Credits int
}

func accountStatusFromAPI(r *api.AccountStatusResult) *AccountStatus {
	return &AccountStatus{
		Created: time.UnixMilli(r.Created),
		UserID:  r.UserID,
		Email:   r.Email,
		Active:  r.Active,
		Plan:    r.Plan,
		Expires: time.UnixMilli(r.Expires),
		Credits: r.Credits,
	}
}
