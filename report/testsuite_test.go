package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestSuiteJSONShape(t *testing.T) {
	suite := NewTestSuite("run-1")

	ok := NewTestCase("ok case")
	ok.Success("step", "fine")

	broken := NewTestCase("broken case")
	broken.Error("step", "boom")

	suite.AddTestCase(ok)
	suite.AddTestCase(broken)

	body, err := suite.ToJSON(true, 42)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &doc))

	assert.InDelta(t, 1, doc["success"], 0)
	assert.InDelta(t, 1, doc["failures"], 0)

	testcases, ok2 := doc["testcases"].(map[string]interface{})
	require.True(t, ok2)
	assert.Len(t, testcases["failures"], 1)
	assert.Len(t, testcases["success"], 1)
}

func TestTestSuiteFailuresOnlyOmitsSuccessKey(t *testing.T) {
	suite := NewTestSuite("run-2")

	ok := NewTestCase("ok case")
	ok.Success("step", "fine")
	suite.AddTestCase(ok)

	body, err := suite.ToJSON(false, 0)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &doc))

	testcases := doc["testcases"].(map[string]interface{})
	_, hasSuccess := testcases["success"]
	assert.False(t, hasSuccess)
}
