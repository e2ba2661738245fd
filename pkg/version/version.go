package version

// Version is stamped at build time:
// go build -ldflags "-X github.com/shelfsearch/shelfsearch/pkg/version.Version=1.2.0" ./cmd/api
var Version = "dev"
