package constants

import "time"

// Auth provider values stored on user records
const (
	ProviderLocal    = "local"
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

// Page routes used for redirects
const (
	RouteHome     = "/"
	RouteSecrets  = "/secrets"
	RouteSubmit   = "/submit"
	RouteLogin    = "/login"
	RouteRegister = "/register"
	RouteLogout   = "/logout"
)

// Session lifetimes
const (
	SessionDuration     = 24 * time.Hour
	OAuthStateDuration  = 10 * time.Minute
	RevocationPrunePlan = "@every 24h"
)

// Cookie and context keys
const (
	SessionIssuer        = "secrets"
	OAuthStateCookieName = "oauth_state"
	ContextUserKey       = "user"
)
