package handlers

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/hysteriabot/internal/host"
	"github.com/edgard/hysteriabot/internal/vpn"
)

// Callback data attached to the menu buttons.
const (
	ActionGetConfig = "get_config"
	ActionStatus    = "status"
	ActionRestart   = "restart"
)

const (
	msgAccessDenied = "⛔ Access denied!"
	msgRestarted    = "✅ VPN restarted successfully!"

	statusActive   = "🟢 Active"
	statusInactive = "🔴 Inactive"
)

// MenuKeyboard returns the action menu, one button per row.
func MenuKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "📱 Get VPN Config", CallbackData: ActionGetConfig}},
			{{Text: "📊 Server Status", CallbackData: ActionStatus}},
			{{Text: "🔧 Restart VPN", CallbackData: ActionRestart}},
		},
	}
}

func renderGreeting(firstName string) string {
	return fmt.Sprintf("👋 Hi %s!\nVPN Management Bot\nChoose an option:", firstName)
}

// renderConfig formats the connection details as legacy Markdown.
func renderConfig(info vpn.ConnectionInfo) string {
	return fmt.Sprintf("🔐 *VPN Configuration*\n\n"+
		"📍 Server: `%s`\n"+
		"🔑 Password: `%s`\n"+
		"🌐 Port: `%d`\n\n"+
		"📱 *Mobile config:*\n`%s`",
		info.Server, info.Password, info.Port, info.URI)
}

// renderStatus formats the service state as legacy Markdown.
func renderStatus(state, ip, uptime string) string {
	indicator := statusInactive
	if host.IsActive(state) {
		indicator = statusActive
	}
	return fmt.Sprintf("📊 *Server Status*\n\n"+
		"• VPN: %s\n"+
		"• IP: `%s`\n"+
		"• Uptime: %s",
		indicator, ip, uptime)
}

// RenderError formats any host operation failure for the operator.
func RenderError(err error) string {
	return "❌ Error: " + err.Error()
}
