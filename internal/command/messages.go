package command

import "github.com/bwmarrin/discordgo"

const (
	MsgCommandNotFound  = "Command not found!"
	MsgNotAuthenticated = "You are not authenticated. Please link your account."
	MsgCommandError     = "There was an error while executing this command!"
	MsgExpired          = "This interaction has expired."
)

// Custom emojis of the Croissant server.
const (
	EmojiCredits          = "<:credit:1369444764906164316>"
	EmojiVerified         = "<:verified:1398991338799890463>"
	EmojiBrandVerified    = "<:brandverified:1398991334701797407>"
	EmojiAdmin            = "<:admin:1398991333120675941>"
	EmojiEarlyUser        = "<:early_user:1425082856564199497>"
	EmojiModerator        = "<:moderator:1425082866936582265>"
	EmojiPartner          = "<:partner:1425082861018677258>"
	EmojiStaff            = "<:staff:1425082850168012871>"
	EmojiContributor      = "<:contributor:1425082858535653438>"
	EmojiCommunityManager = "<:cm:1425082865443668091>"
	EmojiBugHunter        = "<:bug_hunter:1425082863480471614>"
)

// Shown to anyone clicking a control that belongs to another user.
const (
	MsgNotYourDialog    = "You cannot interact with this confirmation."
	MsgNotYourShop      = "You cannot interact with this shop."
	MsgNotYourInventory = "You cannot interact with this inventory."
	MsgNotYourHelp      = "You cannot interact with this help menu."
)

// CreditsComponentEmoji is EmojiCredits for buttons and select options.
func CreditsComponentEmoji() *discordgo.ComponentEmoji {
	return &discordgo.ComponentEmoji{Name: "credit", ID: "1369444764906164316"}
}
