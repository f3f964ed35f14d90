package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type Profile struct {
	ID          string
	Name        string
	BlockedApps []string
	StrictMode  bool
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// Blocks reports whether packageName is restricted by this profile.
func (p Profile) Blocks(packageName string) bool {
	i := sort.SearchStrings(p.BlockedApps, packageName)
	return i < len(p.BlockedApps) && p.BlockedApps[i] == packageName
}

// NormalizeApps trims, deduplicates and sorts package names.
func NormalizeApps(apps []string) []string {
	seen := make(map[string]struct{}, len(apps))
	out := make([]string, 0, len(apps))
	for _, app := range apps {
		app = strings.TrimSpace(app)
		if app == "" {
			continue
		}
		if _, ok := seen[app]; ok {
			continue
		}
		seen[app] = struct{}{}
		out = append(out, app)
	}
	sort.Strings(out)
	return out
}
