package main

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/tatianab/event-engine/internal/config"
	"github.com/tatianab/event-engine/internal/locale"
	"github.com/tatianab/event-engine/internal/models"
)

// loadScripts loads every script under cfg.ScriptsDir. Parser diagnostics
// go to logger.
func loadScripts(cfg *config.Config, logger *log.Logger) (*models.Script, error) {
	return models.LoadDir(cfg.ScriptsDir, models.NewParser(logger))
}

// loadCatalog returns nil without error when there is no locales directory,
// in which case dialogue keys are shown as written.
func loadCatalog(cfg *config.Config, logger *log.Logger) (*locale.Catalog, error) {
	if _, err := os.Stat(cfg.LocalesDir); errors.Is(err, fs.ErrNotExist) {
		logger.Printf("no locales in %s, showing raw keys", cfg.LocalesDir)
		return nil, nil
	}
	return locale.LoadDir(cfg.LocalesDir, cfg.Locale, logger)
}
