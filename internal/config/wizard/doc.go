// Package wizard provides an interactive configuration wizard for
// vdsmigrate.
//
// It guides operators through describing their vCenter, the hosts to
// migrate, and the switch topology, using charmbracelet/huh for
// form-based input. The main entry point is RunWizard, which returns a
// Result; BuildConfig converts it to a config.Config and WriteConfig
// renders the YAML output file. The vCenter password is never written
// to disk, it is read from VSPHERE_PASSWORD at runtime.
package wizard
