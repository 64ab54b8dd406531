// Package region classifies callers as EU-resident or global for model
// routing. EU-classified callers default to EU-hosted models unless they have
// explicitly opted into global routing.
package region

import (
	"strings"

	"github.com/Egham-7/llm-router/internal/models"
	"github.com/Egham-7/llm-router/internal/services/catalog"

	fiberlog "github.com/gofiber/fiber/v2/log"
)

const (
	PreferenceEU     = "eu"
	PreferenceGlobal = "global"
)

// eeaCountries covers the EEA plus the UK and Switzerland.
var eeaCountries = map[string]struct{}{
	"AT": {}, "BE": {}, "BG": {}, "HR": {}, "CY": {}, "CZ": {}, "DK": {},
	"EE": {}, "FI": {}, "FR": {}, "DE": {}, "GR": {}, "HU": {}, "IS": {},
	"IE": {}, "IT": {}, "LV": {}, "LI": {}, "LT": {}, "LU": {}, "MT": {},
	"NL": {}, "NO": {}, "PL": {}, "PT": {}, "RO": {}, "SK": {}, "SI": {},
	"ES": {}, "SE": {}, "GB": {}, "CH": {},
}

// euTimezonePrefixes matches IANA zones inside EU data-residency scope.
var euTimezonePrefixes = []string{
	"Europe/",
	"Atlantic/Canary",
	"Atlantic/Madeira",
	"Atlantic/Azores",
	"Atlantic/Reykjavik",
	"Atlantic/Faroe",
}

// Resolver decides the compliance region and the compliant default model.
type Resolver struct {
	catalog *catalog.Catalog
}

func NewResolver(c *catalog.Catalog) *Resolver {
	return &Resolver{catalog: c}
}

// Resolve classifies the caller. First match wins: explicit preference,
// country membership, timezone prefix, then global.
func (r *Resolver) Resolve(hints models.RegionHints) bool {
	switch strings.ToLower(hints.UserPreference) {
	case PreferenceEU:
		return true
	case PreferenceGlobal:
		return false
	}

	if _, ok := eeaCountries[strings.ToUpper(hints.CountryCode)]; ok {
		return true
	}

	if hints.Timezone != "" {
		for _, prefix := range euTimezonePrefixes {
			if strings.HasPrefix(hints.Timezone, prefix) {
				return true
			}
		}
	}

	return false
}

// ModelForUser returns the effective model id. A non-empty selection is
// returned unchanged; the selection is not re-validated against the EU
// constraint (customer choice wins), but a mismatch is logged so it can be
// audited. With no selection, EU callers get the EU-hosted default and
// everyone else the platform default.
func (r *Resolver) ModelForUser(isEU bool, selectedID string) string {
	if selectedID != "" {
		if isEU {
			if m := r.catalog.ByID(selectedID); m != nil && !m.EUHosted {
				fiberlog.Warnf("region: EU caller kept non-EU-hosted model %s by explicit selection", selectedID)
			}
		}
		return selectedID
	}

	if isEU {
		return r.catalog.DefaultEUModel().ID
	}
	return r.catalog.DefaultModel().ID
}
