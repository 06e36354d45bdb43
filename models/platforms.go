package models

const (
	PlatformTwitter   = "twitter"
	PlatformLinkedin  = "linkedin"
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
)

// DefaultCharLimit applies to platforms missing from the capability table.
const DefaultCharLimit = 1000

type PlatformCapability struct {
	Label     string `json:"label"`
	CharLimit int    `json:"char_limit"`
	Icon      string `json:"icon"`
}

// Platforms is the single capability lookup consumed everywhere a view or
// task used to branch on the platform name.
var Platforms = map[string]PlatformCapability{
	PlatformTwitter:   {Label: "Twitter", CharLimit: 280, Icon: "twitter"},
	PlatformLinkedin:  {Label: "LinkedIn", CharLimit: 3000, Icon: "linkedin"},
	PlatformFacebook:  {Label: "Facebook", CharLimit: 2000, Icon: "facebook"},
	PlatformInstagram: {Label: "Instagram", CharLimit: 2200, Icon: "instagram"},
}

func CharLimit(platform string) int {
	if cap, ok := Platforms[platform]; ok {
		return cap.CharLimit
	}
	return DefaultCharLimit
}

func KnownPlatform(platform string) bool {
	_, ok := Platforms[platform]
	return ok
}
