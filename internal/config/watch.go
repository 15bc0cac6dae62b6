package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch reloads the configuration whenever the config file in use changes
// and hands the result to onChange. A reload that fails validation is
// reported as an error and the caller keeps its previous settings.
//
// Watch does nothing useful when no config file was read.
func Watch(onChange func(*Config, error)) {
	watch(viper.GetViper(), onChange)
}

func watch(v *viper.Viper, onChange func(*Config, error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		// Attribute-only changes leave the content as it was
		if e.Op == fsnotify.Chmod {
			return
		}
		onChange(load(v))
	})
	v.WatchConfig()
}
