package site

import "encoding/json"

const (
	modelsLabel = "Models"
	homeEntry   = "index"
)

// DirEntry is a directory item of the root manifest.
type DirEntry struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	Collapsible bool   `json:"collapsible"`
	Collapsed   bool   `json:"collapsed"`
}

func listManifest(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	return encodeManifest(names)
}

// rootManifest lists the home page, one entry per tag directory and, when
// present, the models directory.
func rootManifest(tags []TagDir, hasModels bool) (string, error) {
	entries := []any{homeEntry}
	for _, t := range tags {
		entries = append(entries, DirEntry{
			Type:        "dir",
			Name:        t.Name,
			Label:       t.Label,
			Collapsible: true,
			Collapsed:   false,
		})
	}
	if hasModels {
		entries = append(entries, DirEntry{
			Type:        "dir",
			Name:        ModelsDir,
			Label:       modelsLabel,
			Collapsible: true,
			Collapsed:   true,
		})
	}
	return encodeManifest(entries)
}

func encodeManifest(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
