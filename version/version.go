package version

// Version is the current lifeline release.
const Version = "0.1.0"
