package common

// Keys in the persisted client storage. TokenKey and ThemeKey are fixed;
// role entries are keyed per identity with RoleKeyPrefix + identity id.
const (
	TokenKey      = "etuitionbd_token"
	ThemeKey      = "etuitionbd_theme"
	RoleKeyPrefix = "userRole_"
)

// AuthorizationHeader carries the bearer token on outbound backend requests.
const AuthorizationHeader = "Authorization"
