package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skybi/assocarray/internal/api/schema"
)

func Test_Paginate_Cuts_Page_When_Within_Bounds(t *testing.T) {
	t.Parallel()

	response := schema.Paginate(1, 2, []string{"a", "b", "c", "d"})

	assert.Equal(t, []string{"b", "c"}, response.Data)
	assert.Equal(t, uint64(4), response.Pagination.TotalCount)
	assert.Equal(t, 2, response.Pagination.IncludedCount)
}

func Test_Paginate_Returns_Empty_Page_When_Offset_Beyond_End(t *testing.T) {
	t.Parallel()

	response := schema.Paginate(10, 5, []int{1, 2})

	assert.NotNil(t, response.Data)
	assert.Empty(t, response.Data)
	assert.Equal(t, uint64(2), response.Pagination.TotalCount)
}
