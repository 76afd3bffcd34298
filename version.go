package episodenotes

// Version is overridden at build time with -ldflags "-X github.com/a-h/episodenotes.Version=...".
var Version = "dev"
