package goquery_test

import (
	"testing"

	"github.com/fwojciec/toplist"
	"github.com/fwojciec/toplist/goquery"
	"github.com/stretchr/testify/assert"
)

func TestOldLayoutTier_Layout(t *testing.T) {
	t.Parallel()

	assert.Equal(t, toplist.LayoutOld, goquery.NewOldLayoutTier().Layout())
}

func TestOldLayoutTier_Candidates(t *testing.T) {
	t.Parallel()

	t.Run("extracts links inside title columns", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html><body>
<table class="chart full-width">
<tbody class="lister-list">
	<tr>
		<td class="posterColumn"><a href="/title/tt0111161/"><img src="poster.jpg"></a></td>
		<td class="titleColumn">
			1.
			<a href="/title/tt0111161/?pf_rd_m=A2FGELUUNOQJNL" title="Frank Darabont (dir.)"> The Shawshank Redemption </a>
			<span class="secondaryInfo">(1994)</span>
		</td>
	</tr>
	<tr>
		<td class="titleColumn"><a href="/title/tt0068646/">The Godfather</a></td>
	</tr>
</tbody>
</table>
</body></html>`

		got := goquery.NewOldLayoutTier().Candidates(parse(t, html))

		assert.Equal(t, []toplist.Candidate{
			{Name: "The Shawshank Redemption", ID: "tt0111161"},
			{Name: "The Godfather", ID: "tt0068646"},
		}, got)
	})

	t.Run("skips links without a title href", func(t *testing.T) {
		t.Parallel()

		html := `<table><tr><td class="titleColumn">
	<a>No href</a>
	<a href="/name/nm0001104/">Frank Darabont</a>
	<a href="/title/tt0071562/">The Godfather Part II</a>
</td></tr></table>`

		got := goquery.NewOldLayoutTier().Candidates(parse(t, html))

		assert.Equal(t, []toplist.Candidate{{Name: "The Godfather Part II", ID: "tt0071562"}}, got)
	})

	t.Run("keeps duplicates for the orchestrator to collapse", func(t *testing.T) {
		t.Parallel()

		html := `<table><tr><td class="titleColumn">
	<a href="/title/tt0071562/">The Godfather Part II</a>
	<a href="/title/tt0071562/reviews/">Reviews</a>
</td></tr></table>`

		got := goquery.NewOldLayoutTier().Candidates(parse(t, html))

		assert.Len(t, got, 2)
	})
}
