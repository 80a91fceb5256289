package models

// Setting keys for the users' display names.
const (
	SettingUserAName = "user_a_name"
	SettingUserBName = "user_b_name"
)

// Default display names when the settings are missing.
const (
	DefaultUserAName = "User A"
	DefaultUserBName = "User B"
)

// Setting is a key/value pair shown in the profile.
type Setting struct {
	Key   string
	Value string
}

// IsDisplayNameKey reports whether key is one of the two display-name keys.
func IsDisplayNameKey(key string) bool {
	return key == SettingUserAName || key == SettingUserBName
}
