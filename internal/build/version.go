package build

// Version is overridden at build time with -ldflags "-X github.com/integrail/namegen-client/internal/build.Version=..."
var Version = "dev"
