package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/lexal/lexal-node/pkg/config"
	"github.com/lexal/lexal-node/pkg/models"
	"github.com/lexal/lexal-node/pkg/nodes/lexal"
	"github.com/lexal/lexal-node/pkg/persistence/file"
	"github.com/lexal/lexal-node/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := registry.NewRegistry(logger)
	require.NoError(t, reg.RegisterDefaultNodes())

	api := NewAPI(logger, file.NewPersistence(t.TempDir()), reg, nil, nil, lexal.NodeTypeID)

	return api.App()
}

func get(t *testing.T, app *fiber.App, target string) (int, string) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			t.Logf("Failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestAPI_RootEndpoint(t *testing.T) {
	status, body := get(t, setupTestApp(t), "/")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "lexal node", body)
}

func TestAPI_Probes(t *testing.T) {
	app := setupTestApp(t)

	status, body := get(t, app, "/livez")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body)

	status, _ = get(t, app, "/readyz")
	assert.Equal(t, http.StatusOK, status)
}

func TestAPI_ExecuteAndMetrics(t *testing.T) {
	app := setupTestApp(t)

	payload, err := json.Marshal(map[string]any{"properties": map[string]any{"str_field": "3", "int_field": 4}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/execute", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var run models.RunContext
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))
	assert.Equal(t, models.RunStateComplete, run.State)
	assert.InDelta(t, 7, run.Result["result"], 0)

	status, body := get(t, app, "/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `lexal_node_runs_total{node_type_id="`+lexal.NodeTypeID+`",state="complete"} 1`)
}

func TestAPI_Info(t *testing.T) {
	status, body := get(t, setupTestApp(t), "/info")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"node_type"`)
	assert.Contains(t, body, lexal.NodeTypeID)
}

func TestPrintInfo(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, printInfo(&out, lexal.ExtendedNodeTypeID))

	var response struct {
		NodeType models.NodeType `json:"node_type"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &response))
	assert.Equal(t, lexal.ExtendedNodeTypeID, response.NodeType.ID)
	assert.Len(t, response.NodeType.Properties, 8)

	require.Error(t, printInfo(&out, "missing"))
}

func TestValidateNodes(t *testing.T) {
	var out bytes.Buffer

	reg := registry.NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, validateNodes(&out, reg))
	assert.Contains(t, out.String(), "✓ "+lexal.NodeTypeID)
	assert.Contains(t, out.String(), "✓ "+lexal.ExtendedNodeTypeID)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 8081\nevent_bus: none\nlog_level: debug\n"), 0600))

	var cfg config.Config

	command := RunCommand()
	command.Action = func(_ context.Context, c *cli.Command) error {
		var err error

		cfg, err = loadConfig(c)

		return err
	}

	err := command.Run(context.Background(), []string{"run", "--config", path, "--log-level", "warn"})
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "none", cfg.EventBus)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, lexal.NodeTypeID, cfg.DefaultNode)
	assert.Equal(t, config.DefaultDatabaseURL, cfg.DatabaseURL)
}
