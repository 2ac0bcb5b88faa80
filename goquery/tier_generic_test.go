package goquery_test

import (
	"testing"

	"github.com/fwojciec/toplist"
	"github.com/fwojciec/toplist/goquery"
	"github.com/stretchr/testify/assert"
)

func TestGenericTier_Layout(t *testing.T) {
	t.Parallel()

	assert.Equal(t, toplist.LayoutGeneric, goquery.NewGenericTier().Layout())
}

func TestGenericTier_Candidates(t *testing.T) {
	t.Parallel()

	t.Run("extracts root-relative title links", func(t *testing.T) {
		t.Parallel()

		html := `<div>
	<a href="/title/tt0111161/">The Shawshank Redemption</a>
	<a href="/title/tt0068646">The Godfather</a>
	<a href="/title/tt0468569/?ref_=fn">The Dark Knight</a>
</div>`

		got := goquery.NewGenericTier().Candidates(parse(t, html))

		assert.Equal(t, []toplist.Candidate{
			{Name: "The Shawshank Redemption", ID: "tt0111161"},
			{Name: "The Godfather", ID: "tt0068646"},
			{Name: "The Dark Knight", ID: "tt0468569"},
		}, got)
	})

	t.Run("skips links with empty text", func(t *testing.T) {
		t.Parallel()

		html := `<div>
	<a href="/title/tt0111161/"><img src="poster.jpg" alt="Poster"></a>
	<a href="/title/tt0111161/">   </a>
	<a href="/title/tt0111161/">The Shawshank Redemption</a>
</div>`

		got := goquery.NewGenericTier().Candidates(parse(t, html))

		assert.Equal(t, []toplist.Candidate{{Name: "The Shawshank Redemption", ID: "tt0111161"}}, got)
	})

	t.Run("requires the href to start with the title path", func(t *testing.T) {
		t.Parallel()

		html := `<div>
	<a href="https://www.imdb.com/title/tt0111161/">Absolute</a>
	<a href="/de/title/tt0068646/">Localized</a>
	<a href="/name/nm0000209/">Tim Robbins</a>
	<a href="/title/ttabc/">Bad ID</a>
</div>`

		got := goquery.NewGenericTier().Candidates(parse(t, html))

		assert.Empty(t, got)
	})
}
