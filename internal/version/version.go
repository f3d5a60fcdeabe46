package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/omarchy-fork/omacustom/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/omarchy-fork/omacustom/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/omarchy-fork/omacustom/internal/version.Date={{.Date}}
)
