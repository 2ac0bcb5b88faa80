package toplist

// Addon defaults.
const (
	DefaultAddonID   = "community.toplist"
	DefaultCatalogID = "imdb_top"
)

// Manifest describes the addon's capabilities to Stremio.
type Manifest struct {
	ID          string              `json:"id"`
	Version     string              `json:"version"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Logo        string              `json:"logo,omitempty"`
	Resources   []string            `json:"resources"`
	Types       []string            `json:"types"`
	Catalogs    []CatalogDescriptor `json:"catalogs"`
	IDPrefixes  []string            `json:"idPrefixes"`
}

// CatalogDescriptor declares a catalog served by the addon.
type CatalogDescriptor struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewManifest returns the manifest for an addon serving the IMDb Top Rated
// chart as a single movie catalog.
func NewManifest(addonID, version string) *Manifest {
	if addonID == "" {
		addonID = DefaultAddonID
	}
	return &Manifest{
		ID:          addonID,
		Version:     version,
		Name:        "IMDb Top Rated",
		Description: "The IMDb Top Rated Movies chart as a Stremio catalog.",
		Logo:        "https://dl.strem.io/addon-logo.png",
		Resources:   []string{"catalog"},
		Types:       []string{MetaTypeMovie},
		Catalogs: []CatalogDescriptor{
			{Type: MetaTypeMovie, ID: DefaultCatalogID, Name: "IMDb Top Rated"},
		},
		IDPrefixes: []string{"tt"},
	}
}

// HasCatalog reports whether the manifest declares a catalog with the given
// type and ID.
func (m *Manifest) HasCatalog(typ, id string) bool {
	for _, c := range m.Catalogs {
		if c.Type == typ && c.ID == id {
			return true
		}
	}
	return false
}
