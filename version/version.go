package version

// Version is the formdraft build version. Overridden at build time via
// -ldflags "-X github.com/formdraft/formdraft/version.Version=x.y.z".
var Version = "0.1.0"
