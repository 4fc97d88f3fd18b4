package types

// Version is the application version, overwritten by -ldflags at release build
var Version = "dev"
