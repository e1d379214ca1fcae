package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/costestimator/internal/domain/entities"
)

const testDataset = `{
  "services": [
    {"code": "mri", "name": "MRI (no contrast)", "base": {"low": 500, "high": 1500}, "tipKey": "mri"},
    {"code": "xray", "name": "X-ray", "base": {"low": 100, "high": 200}}
  ],
  "regionFactors": {"midwest": 1.1},
  "tips": {
    "general": ["Ask for an itemized estimate."],
    "mri": ["Freestanding imaging centers are often cheaper."]
  }
}`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.json")
	require.NoError(t, os.WriteFile(path, []byte(testDataset), 0o600))
	return path
}

func resetFlags() {
	dataSource, dataFormat, verbose = "", "", false
	quoteService, quoteZIP, quoteInsurance, quoteJSON = "", "", string(entities.InsuranceInsured), false
	servicesJSON, tipsJSON = false, false
	estimator = nil
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestQuoteCmd_HasFlags(t *testing.T) {
	for _, name := range []string{"service", "zip", "insurance", "json"} {
		assert.NotNil(t, quoteCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "insured", quoteCmd.Flags().Lookup("insurance").DefValue)
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("data"))
}

func TestQuoteCmd_Text(t *testing.T) {
	data := writeDataset(t)

	out, err := execute(t, "quote", "--data", data, "--service", "mri", "--zip", "48104", "--insurance", "insured")
	require.NoError(t, err)

	assert.Contains(t, out, "MRI (no contrast)")
	assert.Contains(t, out, "$468 – $1,403")
	assert.Contains(t, out, "ZIP: 48104 • Region: Midwest • Coverage: Insured")
	assert.Contains(t, out, "rough estimates")
	assert.Contains(t, out, "Freestanding imaging centers are often cheaper.")
}

func TestQuoteCmd_JSON(t *testing.T) {
	data := writeDataset(t)

	out, err := execute(t, "quote", "--data", data, "-s", "xray", "-z", "77777", "-i", "uninsured", "--json")
	require.NoError(t, err)

	var quote entities.Quote
	require.NoError(t, json.Unmarshal([]byte(out), &quote))
	assert.Equal(t, int64(90), quote.Low)
	assert.Equal(t, int64(180), quote.High)
	assert.Equal(t, entities.RegionSouthwest, quote.Region)
	assert.Equal(t, []string{"Ask for an itemized estimate."}, quote.Tips)
}

func TestQuoteCmd_InvalidZip(t *testing.T) {
	data := writeDataset(t)

	_, err := execute(t, "quote", "--data", data, "--service", "mri", "--zip", "1234A")
	require.Error(t, err)
	assert.Equal(t, "Please enter a valid 5-digit ZIP code.", err.Error())
}

func TestQuoteCmd_UnknownService(t *testing.T) {
	data := writeDataset(t)

	_, err := execute(t, "quote", "--data", data, "--service", "pet", "--zip", "48104")
	require.Error(t, err)
	assert.Equal(t, "Unknown service selected.", err.Error())
}

func TestQuoteCmd_MissingDataset(t *testing.T) {
	_, err := execute(t, "quote", "--data", filepath.Join(t.TempDir(), "missing.json"), "--service", "mri", "--zip", "48104")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load price data")
}

func TestServicesCmd(t *testing.T) {
	data := writeDataset(t)

	out, err := execute(t, "services", "--data", data)
	require.NoError(t, err)

	assert.Contains(t, out, "CODE")
	assert.Contains(t, out, "mri")
	assert.Contains(t, out, "$500 – $1,500")
	assert.Contains(t, out, "general")
	assert.Less(t, bytes.Index([]byte(out), []byte("mri")), bytes.Index([]byte(out), []byte("xray")))
}

func TestServicesCmd_JSON(t *testing.T) {
	data := writeDataset(t)

	out, err := execute(t, "services", "--data", data, "--json")
	require.NoError(t, err)

	var list []entities.ServiceRecord
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "mri", list[0].Code)
}

func TestTipsCmd(t *testing.T) {
	data := writeDataset(t)

	out, err := execute(t, "tips", "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, "• Ask for an itemized estimate.")

	out, err = execute(t, "tips", "mri", "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, "Freestanding imaging centers")
	assert.NotContains(t, out, "itemized")

	out, err = execute(t, "tips", "unknown", "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, "itemized")
}

func TestTipsCmd_RejectsExtraArgs(t *testing.T) {
	_, err := execute(t, "tips", "a", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts at most 1 arg(s)")
}
