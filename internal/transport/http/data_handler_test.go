package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chipphillips/federal-employment-analysis/internal/exporter"
)

func testProcessedDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	agencyCSV := "\xEF\xBB\xBF" +
		"agency,agency_code,employees,avg_pay,median_pay,std_pay,avg_tenure,median_tenure,avg_grade,redacted_cells\n" +
		"TREASURY,TR,154,90000.00,90000.00,20000.00,8.50,8.50,11.40,0\n" +
		"NASA,NN,25,120000.00,120000.00,0.00,6.00,6.00,12.20,0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, exporter.FileAgencySummary), []byte(agencyCSV), 0644))

	overall := `{"total_employees":179,"total_agencies":2,"total_states":1,` +
		`"avg_salary":95000,"median_salary":95000,"avg_tenure":8,` +
		`"pct_redacted":0,"pct_stem":13.97,"snapshot_yyyymm":202503}` + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, exporter.FileOverallStats), []byte(overall), 0644))

	return dir
}

func newDataServer(t *testing.T) *httptest.Server {
	t.Helper()
	handler := NewDataHandler(testProcessedDir(t), nil)
	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)
	return server
}

func TestGetSummaries(t *testing.T) {
	server := newDataServer(t)

	res, err := http.Get(server.URL + "/summaries")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Summaries []struct {
			Name      string `json:"name"`
			FileName  string `json:"file_name"`
			Available bool   `json:"available"`
		} `json:"summaries"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Len(t, body.Summaries, len(exporter.SummaryFiles))

	byName := map[string]bool{}
	for _, s := range body.Summaries {
		byName[s.Name] = s.Available
	}
	assert.True(t, byName["agency_summary"], "written file is available")
	assert.False(t, byName["state_summary"], "unwritten file is not available")
}

func TestGetSummary(t *testing.T) {
	server := newDataServer(t)

	t.Run("returns rows keyed by header", func(t *testing.T) {
		res, err := http.Get(server.URL + "/summary/agency_summary")
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		var body struct {
			Columns []string            `json:"columns"`
			Rows    []map[string]string `json:"rows"`
		}
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))

		assert.Equal(t, "agency", body.Columns[0], "BOM is stripped from the first header")
		require.Len(t, body.Rows, 2)
		assert.Equal(t, "TREASURY", body.Rows[0]["agency"])
		assert.Equal(t, "154", body.Rows[0]["employees"])
	})

	t.Run("accepts the .csv suffix", func(t *testing.T) {
		res, err := http.Get(server.URL + "/summary/agency_summary.csv")
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("unknown summary is 404", func(t *testing.T) {
		res, err := http.Get(server.URL + "/summary/secret_table")
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("known but ungenerated summary is 404", func(t *testing.T) {
		res, err := http.Get(server.URL + "/summary/state_summary")
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}

func TestGetOverall(t *testing.T) {
	server := newDataServer(t)

	res, err := http.Get(server.URL + "/overall")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var stats map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&stats))
	assert.EqualValues(t, 179, stats["total_employees"])
}

func TestDownload(t *testing.T) {
	server := newDataServer(t)

	t.Run("allowlisted file downloads", func(t *testing.T) {
		res, err := http.Get(server.URL + "/download/" + exporter.FileAgencySummary)
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, res.Header.Get("Content-Disposition"), exporter.FileAgencySummary)
	})

	t.Run("path traversal is rejected", func(t *testing.T) {
		res, err := http.Get(server.URL + "/download/..%2Fconfig.yaml")
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("arbitrary names are rejected", func(t *testing.T) {
		res, err := http.Get(server.URL + "/download/app.log")
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("ungenerated file is 404", func(t *testing.T) {
		res, err := http.Get(server.URL + "/download/" + exporter.FileWorkbook)
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}
