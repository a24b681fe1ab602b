package version

// Version is the service version, set at build time with
// -ldflags "-X github.com/hrygo/lingotime/internal/version.Version=...".
var Version = "0.1.0"

// Commit is the source revision, set at build time.
var Commit = "none"

// GetCurrentVersion returns the version for the given mode. Non-prod builds
// carry a suffix so their audit rows are easy to tell apart.
func GetCurrentVersion(mode string) string {
	if mode == "prod" {
		return Version
	}
	return Version + "-" + mode
}
