// Package core wires a resolved configuration into a ready-to-use store
// registry.
//
// An embedding application opens keeper once at startup and closes it once
// during orderly shutdown:
//
//	cfg, err := config.Load("")
//	if err != nil {
//		return err
//	}
//	app, err := core.Open(cfg)
//	if err != nil {
//		return err
//	}
//	defer app.Close()
//
//	_ = app.Registry.Set("settings.json", "theme", "dark")
//
// Close runs the registry's shutdown hook, which saves every store that was
// touched during the process lifetime.
package core
