package version

// Set at build time via -ldflags "-X croissant-bot/internal/version.BuildDate=...".
var (
	AppName        = "Croissant"
	AppDescription = "Discord front end for the Croissant economy: items, inventories, credits and lobbies."
	Version        = "dev"
	BuildDate      = ""
	GoVersion      = ""
)
