package config

import "time"

// Default values for configuration
const (
	// Log defaults
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	// Telegram defaults
	DefaultStartDescription = "Open the VPN management menu"

	// Hysteria defaults
	DefaultVPNConfigPath = "/etc/hysteria/config.yaml"
	DefaultVPNService    = "hysteria"
	DefaultVPNSNI        = "vpn.example.com"
	DefaultVPNPort       = 443

	// Host defaults
	DefaultIPLookupURL    = "https://ifconfig.me/ip"
	DefaultCommandTimeout = 30 * time.Second
	DefaultUseSudo        = true

	// Scheduler defaults
	DefaultServiceWatchSchedule = "*/5 * * * *"
)

// ServiceWatchTask is the scheduler key of the service watch task.
const ServiceWatchTask = "service_watch"

// defaults is applied to viper before reading the file and environment.
var defaults = map[string]any{
	"telegram.start_description": DefaultStartDescription,

	"vpn.config_path": DefaultVPNConfigPath,
	"vpn.service":     DefaultVPNService,
	"vpn.sni":         DefaultVPNSNI,
	"vpn.port":        DefaultVPNPort,

	"host.ip_lookup_url":   DefaultIPLookupURL,
	"host.command_timeout": DefaultCommandTimeout,
	"host.use_sudo":        DefaultUseSudo,

	"logger.level": DefaultLogLevel,
	"logger.json":  DefaultLogJSON,

	"scheduler.tasks." + ServiceWatchTask + ".enabled":  false,
	"scheduler.tasks." + ServiceWatchTask + ".schedule": DefaultServiceWatchSchedule,
}
