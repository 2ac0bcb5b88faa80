package toplist

import "fmt"

// Catalog URL templates and defaults.
const (
	// PosterURLFormat takes the IMDb ID and the OMDb API key.
	PosterURLFormat = "https://img.omdbapi.com/?i=%s&h=600&apikey=%s"

	// LinkURLFormat takes the title slug and the numeric part of the IMDb ID.
	LinkURLFormat = "https://www.strem.io/s/movie/%s-%s"

	// DescriptionPrefix precedes the title in every meta description.
	DescriptionPrefix = "IMDB Top Rated: "

	// PlaceholderOMDbAPIKey is used in poster URLs when no key is configured.
	PlaceholderOMDbAPIKey = "YOUR_OMDB_KEY"

	// MetaTypeMovie is the Stremio content type of every chart entry.
	MetaTypeMovie = "movie"
)

// Meta is a Stremio catalog item.
type Meta struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Poster      string `json:"poster"`
	Description string `json:"description"`
	Links       []Link `json:"links"`
}

// Link is an external link attached to a Meta.
type Link struct {
	URL string `json:"url"`
}

// MetaBuilder maps chart candidates to catalog metas.
// The zero value is ready to use and fills poster URLs with
// PlaceholderOMDbAPIKey.
type MetaBuilder struct {
	OMDbAPIKey string
}

// Build returns one Meta per candidate in the same order. It performs no
// filtering or deduplication; callers pass the output of Dedupe.
func (b MetaBuilder) Build(candidates []Candidate) []*Meta {
	key := b.OMDbAPIKey
	if key == "" {
		key = PlaceholderOMDbAPIKey
	}

	metas := make([]*Meta, 0, len(candidates))
	for _, c := range candidates {
		metas = append(metas, &Meta{
			ID:          c.ID,
			Type:        MetaTypeMovie,
			Name:        c.Name,
			Poster:      fmt.Sprintf(PosterURLFormat, c.ID, key),
			Description: DescriptionPrefix + c.Name,
			Links: []Link{
				{URL: fmt.Sprintf(LinkURLFormat, Slug(c.Name), stripIDPrefix(c.ID))},
			},
		})
	}
	return metas
}

// BuildCatalog builds metas with the zero-value MetaBuilder.
func BuildCatalog(candidates []Candidate) []*Meta {
	return MetaBuilder{}.Build(candidates)
}

// stripIDPrefix drops the two-character "tt" prefix of an IMDb ID.
func stripIDPrefix(id string) string {
	if len(id) < 2 {
		return ""
	}
	return id[2:]
}
