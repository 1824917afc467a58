package config

const (
	CategoryInformation = "🕯️ Information"
	CategoryEconomy     = "🥐 Economy"
	CategoryInventory   = "🎒 Inventory"
	CategoryLobbies     = "🎮 Lobbies"
	CategoryAccount     = "🔑 Account"
)

var CategoryWeights = map[string]int{
	CategoryInformation: 0,
	CategoryEconomy:     10,
	CategoryInventory:   20,
	CategoryLobbies:     30,
	CategoryAccount:     40,
}
