package global

import (
	"github.com/markusressel/boost2go/internal/configuration"
	"github.com/markusressel/boost2go/internal/persistence"
	"github.com/markusressel/boost2go/internal/ui"
)

// OpenSettings reads the config file and returns the settings database it points to
func OpenSettings() persistence.Settings {
	configuration.ReadConfigFile()

	settings := persistence.NewBoltSettings(configuration.CurrentConfig.DbPath)
	if err := settings.Init(); err != nil {
		ui.Fatal("Error initializing settings database: %v", err)
	}
	return settings
}
