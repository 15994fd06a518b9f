// Package config holds the settings of the strref tool and loads them.
//
// Settings come from three layers, later layers winning:
//
//  1. Default()
//  2. an optional TOML or YAML file (strref.toml, strref.yaml)
//  3. STRREF_* environment variables, e.g. STRREF_LOG_LEVEL=debug
//
// The layers are merged as plain maps and then decoded strictly into Config,
// so an unknown key or a value of the wrong type is reported as a
// *SettingError instead of being ignored.
//
//	cfg, err := config.Load(config.Options{Path: "strref.toml"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Log.Level)
package config
