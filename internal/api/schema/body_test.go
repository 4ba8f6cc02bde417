package schema_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skybi/assocarray/internal/api/schema"
)

type testBody struct {
	Name     *string `json:"name" required:"true"`
	Capacity int     `json:"capacity" min:"0" max:"64"`
	Note     *string `json:"note"`
}

func unmarshal(t *testing.T, body string) (*testBody, []*schema.Error) {
	t.Helper()

	request := httptest.NewRequest("POST", "/", strings.NewReader(body))
	target, validationErrs, err := schema.UnmarshalBody[testBody](request)
	require.NoError(t, err)
	return target, validationErrs
}

func Test_UnmarshalBody_Returns_Target_When_Body_Valid(t *testing.T) {
	t.Parallel()

	target, validationErrs := unmarshal(t, `{"name":"fruits","capacity":32}`)

	require.Empty(t, validationErrs)
	assert.Equal(t, "fruits", *target.Name)
	assert.Equal(t, 32, target.Capacity)
	assert.Nil(t, target.Note)
}

func Test_UnmarshalBody_Reports_Error_When_Body_Invalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		body         string
		expectedType string
	}{
		{name: "MissingRequired", body: `{"capacity":1}`, expectedType: "validation.requestBody.parameter.missing"},
		{name: "EmptyBodyMissingRequired", body: ``, expectedType: "validation.requestBody.parameter.missing"},
		{name: "OutOfRange", body: `{"name":"x","capacity":65}`, expectedType: "validation.requestBody.parameter.number.outOfRange"},
		{name: "WrongType", body: `{"name":1}`, expectedType: "validation.requestBody.parameter.invalidType"},
		{name: "Malformed", body: `{"name":`, expectedType: "validation.requestBody.invalidJSON"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			target, validationErrs := unmarshal(t, testCase.body)
			assert.Nil(t, target)
			require.Len(t, validationErrs, 1)
			assert.Equal(t, testCase.expectedType, validationErrs[0].Type)
		})
	}
}
