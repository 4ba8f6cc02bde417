package validation_test

import (
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skybi/assocarray/internal/api/validation"
)

func Test_QueryNumber_Validates_Parameter(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		query        string
		required     bool
		expected     int64
		expectedType string
	}{
		{name: "Default", query: "", expected: 10},
		{name: "Valid", query: "?limit=42", expected: 42},
		{name: "Missing", query: "", required: true, expectedType: "validation.query.parameter.missing"},
		{name: "NotANumber", query: "?limit=abc", expectedType: "validation.query.parameter.invalidType"},
		{name: "TooLarge", query: "?limit=101", expectedType: "validation.query.parameter.number.outOfRange"},
		{name: "TooSmall", query: "?limit=0", expectedType: "validation.query.parameter.number.outOfRange"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			request := httptest.NewRequest("GET", "/"+testCase.query, nil)
			value, validationErr := validation.QueryNumber(request, "limit", testCase.required, 10, 1, 100)
			if testCase.expectedType != "" {
				require.NotNil(t, validationErr)
				assert.Equal(t, testCase.expectedType, validationErr.Type)
				return
			}
			require.Nil(t, validationErr)
			assert.Equal(t, testCase.expected, value)
		})
	}
}

func Test_QueryUUID_Parses_Parameter_When_Valid(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	request := httptest.NewRequest("GET", "/?snapshot="+id.String(), nil)

	parsed, validationErr := validation.QueryUUID(request, "snapshot", true)
	require.Nil(t, validationErr)
	assert.Equal(t, id, parsed)

	request = httptest.NewRequest("GET", "/?snapshot=nope", nil)
	_, validationErr = validation.QueryUUID(request, "snapshot", true)
	require.NotNil(t, validationErr)
	assert.Equal(t, "validation.query.parameter.invalidType", validationErr.Type)
}

func Test_QueryUUID_Requires_Parameter_Only_When_Asked_To(t *testing.T) {
	t.Parallel()

	request := httptest.NewRequest("GET", "/", nil)

	parsed, validationErr := validation.QueryUUID(request, "snapshot", false)
	require.Nil(t, validationErr)
	assert.Equal(t, uuid.Nil, parsed)

	_, validationErr = validation.QueryUUID(request, "snapshot", true)
	require.NotNil(t, validationErr)
	assert.Equal(t, "validation.query.parameter.missing", validationErr.Type)
}
