package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

type appDetailsEntry struct {
	Success bool `json:"success"`
	Data    struct {
		Name string `json:"name"`
	} `json:"data"`
}

// AppName fetches the store display name for an app id. It is informational
// only; callers treat an error the same as an unknown name.
func (r *Resolver) AppName(ctx context.Context, appID int) (string, error) {
	url := fmt.Sprintf("%s/api/appdetails?appids=%d", r.storeURL, appID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("app details request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("app details request failed: %s", resp.Status)
	}

	var parsed map[string]appDetailsEntry
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("cannot decode app details: %w", err)
	}
	entry, ok := parsed[strconv.Itoa(appID)]
	if !ok || !entry.Success {
		return "", fmt.Errorf("no details for app %d", appID)
	}
	return entry.Data.Name, nil
}
