// Package company serves company information from static JSON documents.
package company

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// InfoType selects which document(s) a lookup reads.
type InfoType string

const (
	// InfoCompany covers history, certificates, and contacts.
	InfoCompany InfoType = "company"
	// InfoBusiness covers the partner program.
	InfoBusiness InfoType = "business"
	// InfoEvents covers upcoming company events.
	InfoEvents InfoType = "events"
	// InfoGeography covers pickup point addresses, filterable by city.
	InfoGeography InfoType = "geography"
	// InfoAll reads every document.
	InfoAll InfoType = "all"
)

// ParseInfoType validates an info type supplied by the model.
func ParseInfoType(s string) (InfoType, error) {
	switch InfoType(s) {
	case InfoCompany, InfoBusiness, InfoEvents, InfoGeography, InfoAll:
		return InfoType(s), nil
	case "":
		return InfoAll, nil
	default:
		return "", fmt.Errorf("unknown info type %q", s)
	}
}

// Source reads the four company documents on demand. Documents are plain
// read-only JSON files maintained outside this service.
type Source struct {
	paths  map[InfoType]string
	logger *zap.Logger
}

// NewSource creates a source over the four document paths.
func NewSource(companyPath, businessPath, eventsPath, geographyPath string, logger *zap.Logger) *Source {
	return &Source{
		paths: map[InfoType]string{
			InfoCompany:   companyPath,
			InfoBusiness:  businessPath,
			InfoEvents:    eventsPath,
			InfoGeography: geographyPath,
		},
		logger: logger,
	}
}

// Lookup returns the requested sections keyed by document name. Unreadable
// documents are skipped with a warning. For geography lookups, city is a
// case-insensitive substring filter on the city field; when the filter
// matches nothing the unfiltered set is returned rather than an empty one.
func (s *Source) Lookup(infoType InfoType, city string) (map[string]any, error) {
	result := make(map[string]any)

	for _, section := range []InfoType{InfoCompany, InfoBusiness, InfoEvents} {
		if infoType != section && infoType != InfoAll {
			continue
		}
		data, err := s.loadDocument(section)
		if err != nil {
			s.logger.Warn("failed to load info document", zap.String("section", string(section)), zap.Error(err))
			continue
		}
		result[string(section)] = data
	}

	if infoType == InfoGeography || infoType == InfoAll {
		data, err := s.loadDocument(InfoGeography)
		if err != nil {
			s.logger.Warn("failed to load info document", zap.String("section", string(InfoGeography)), zap.Error(err))
		} else {
			result[string(InfoGeography)] = filterGeography(data, city)
		}
	}

	s.logger.Debug("company info lookup",
		zap.String("info_type", string(infoType)), zap.String("city", city), zap.Int("sections", len(result)))
	return result, nil
}

func (s *Source) loadDocument(section InfoType) (any, error) {
	raw, err := os.ReadFile(s.paths[section])
	if err != nil {
		return nil, err
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("malformed %s document: %w", section, err)
	}
	return data, nil
}

// filterGeography keeps locations whose city contains the filter string.
// An empty filter or zero matches returns the full set.
func filterGeography(data any, city string) any {
	locations, ok := data.([]any)
	if !ok || city == "" {
		return data
	}
	cityLower := strings.ToLower(city)
	var filtered []any
	for _, loc := range locations {
		entry, ok := loc.(map[string]any)
		if !ok {
			continue
		}
		name, _ := entry["city"].(string)
		if strings.Contains(strings.ToLower(name), cityLower) {
			filtered = append(filtered, loc)
		}
	}
	if len(filtered) == 0 {
		return data
	}
	return filtered
}
