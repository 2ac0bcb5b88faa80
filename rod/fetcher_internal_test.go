package rod

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/toplist"
	"github.com/stretchr/testify/assert"
)

func TestFetchError(t *testing.T) {
	t.Parallel()

	const url = "https://www.imdb.com/chart/top/"

	t.Run("page timeout is a transport error", func(t *testing.T) {
		t.Parallel()

		page, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		<-page.Done()

		err := fetchError(context.Background(), page, url, page.Err())

		assert.Equal(t, toplist.ETRANSPORT, toplist.ErrorCode(err))
		assert.Equal(t, "timeout rendering "+url, toplist.ErrorMessage(err))
		assert.NotErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("wrapped deadline from the browser is a transport error", func(t *testing.T) {
		t.Parallel()

		err := fetchError(context.Background(), context.Background(), url,
			fmt.Errorf("navigate: %w", context.DeadlineExceeded))

		assert.Equal(t, toplist.ETRANSPORT, toplist.ErrorCode(err))
		assert.Equal(t, "timeout rendering "+url, toplist.ErrorMessage(err))
	})

	t.Run("caller cancellation passes through", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithCancel(context.Background())
		page, cancelPage := context.WithTimeout(parent, time.Minute)
		defer cancelPage()
		cancel()

		err := fetchError(parent, page, url, page.Err())

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("caller deadline passes through", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		<-parent.Done()
		page, cancelPage := context.WithTimeout(parent, time.Minute)
		defer cancelPage()

		err := fetchError(parent, page, url, page.Err())

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("other failures are transport errors", func(t *testing.T) {
		t.Parallel()

		err := fetchError(context.Background(), context.Background(), url, errors.New("net::ERR_NAME_NOT_RESOLVED"))

		assert.Equal(t, toplist.ETRANSPORT, toplist.ErrorCode(err))
		assert.Contains(t, toplist.ErrorMessage(err), "net::ERR_NAME_NOT_RESOLVED")
	})
}
