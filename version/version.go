package version

// Version is the current release of the mayday app
const Version = "0.1.0"
