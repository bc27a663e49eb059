package version

// Version is the agentsx release version. Release builds override it via
// -ldflags "-X agentsx/internal/version.Version=...".
var Version = "0.2.0"
