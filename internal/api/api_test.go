package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/markusressel/boost2go/internal/control"
	"github.com/markusressel/boost2go/internal/hardware"
	"github.com/markusressel/boost2go/internal/persistence"
	"github.com/markusressel/boost2go/internal/scheduler"
	"github.com/markusressel/boost2go/internal/sensors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSensorId  = "/config/cpu"
	testControlId = "/config/control/0"
)

type staticReader struct {
	value float64
	err   error
}

func (r staticReader) Read() (float64, error) {
	return r.value, r.err
}

func createBackend() Backend {
	topology := hardware.NewTopology()
	topology.AddGroup(hardware.NewConfiguredGroup([]hardware.SensorSpec{
		{Id: testSensorId, Name: "CPU", Type: sensors.Temperature, Reader: staticReader{value: 42}},
		{Id: "/config/broken", Type: sensors.Temperature, Reader: staticReader{err: errors.New("unreadable")}},
	}))
	topology.Update()

	s := scheduler.New(time.Hour)
	c := control.New(testControlId, persistence.NewMemorySettings(), s, 20, 100)

	return Backend{
		Topology: topology,
		Controls: []*control.Control{c},
	}
}

func request(backend Backend, method string, path string, body string) *httptest.ResponseRecorder {
	rest := CreateRestService(backend)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	rest.ServeHTTP(rec, req)
	return rec
}

func TestAlive(t *testing.T) {
	// GIVEN
	backend := createBackend()

	// WHEN
	rec := request(backend, http.MethodGet, "/alive", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetSensors(t *testing.T) {
	// GIVEN
	backend := createBackend()

	// WHEN
	rec := request(backend, http.MethodGet, "/sensor/", "")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var result []SensorDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result, 2)

	ids := []string{result[0].Id, result[1].Id}
	assert.Contains(t, ids, testSensorId)
	assert.Contains(t, ids, "/config/broken")
}

func TestGetSensor(t *testing.T) {
	// GIVEN
	backend := createBackend()

	// WHEN
	rec := request(backend, http.MethodGet, "/sensor"+testSensorId+"/", "")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var result SensorDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, testSensorId, result.Id)
	assert.Equal(t, "CPU", result.Name)
	assert.Equal(t, "temperature", result.Type)
	require.NotNil(t, result.Value)
	assert.Equal(t, 42.0, *result.Value)
}

func TestGetSensor_Absent(t *testing.T) {
	// GIVEN
	backend := createBackend()

	// WHEN
	rec := request(backend, http.MethodGet, "/sensor/config/broken", "")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var result SensorDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Nil(t, result.Value)
}

func TestGetSensor_NotFound(t *testing.T) {
	// GIVEN
	backend := createBackend()

	// WHEN
	rec := request(backend, http.MethodGet, "/sensor/config/unknown/", "")

	// THEN
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSensor_SmoothedAndValues(t *testing.T) {
	// GIVEN
	backend := createBackend()
	for i := 0; i < 7; i++ {
		backend.Topology.Update()
	}

	// WHEN
	rec := request(backend, http.MethodGet, "/sensor"+testSensorId+"/", "")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var result SensorDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotNil(t, result.Smoothed)
	assert.Equal(t, 40.0, *result.Smoothed)
	require.Len(t, result.Values, 2)
	assert.Equal(t, 42.0, result.Values[0].Value)
}

func TestGetSensors_OmitsValues(t *testing.T) {
	// GIVEN
	backend := createBackend()
	for i := 0; i < 7; i++ {
		backend.Topology.Update()
	}

	// WHEN
	rec := request(backend, http.MethodGet, "/sensor/", "")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "\"values\"")
	assert.Contains(t, rec.Body.String(), "\"smoothed\"")
}

func TestResetSensorMinMax(t *testing.T) {
	// GIVEN
	backend := createBackend()
	sensor, ok := backend.Topology.FindSensor(testSensorId)
	require.True(t, ok)
	_, hasMin := sensor.Min()
	require.True(t, hasMin)

	// WHEN
	rec := request(backend, http.MethodDelete, "/sensor"+testSensorId+"/minmax/", "")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var result SensorDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Nil(t, result.Min)
	assert.Nil(t, result.Max)
	require.NotNil(t, result.Value)
	assert.Equal(t, 42.0, *result.Value)
}

func TestResetSensorMin_KeepsMax(t *testing.T) {
	// GIVEN
	backend := createBackend()

	// WHEN
	rec := request(backend, http.MethodDelete, "/sensor"+testSensorId+"/min/", "")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var result SensorDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Nil(t, result.Min)
	require.NotNil(t, result.Max)
	assert.Equal(t, 42.0, *result.Max)
}

func TestResetSensorMinMax_UnknownTarget(t *testing.T) {
	// GIVEN
	backend := createBackend()

	// WHEN
	rec := request(backend, http.MethodDelete, "/sensor"+testSensorId+"/average/", "")

	// THEN
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetSensorMinMax_NotFound(t *testing.T) {
	// GIVEN
	backend := createBackend()

	// WHEN
	rec := request(backend, http.MethodDelete, "/sensor/config/unknown/minmax/", "")

	// THEN
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetControl(t *testing.T) {
	// GIVEN
	backend := createBackend()

	// WHEN
	rec := request(backend, http.MethodGet, "/control"+testControlId+"/", "")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var result ControlDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, testControlId, result.Id)
	assert.Equal(t, control.Undefined.String(), result.Mode)
	assert.Equal(t, 20.0, result.Min)
	assert.Equal(t, 100.0, result.Max)
}

func TestGetControls(t *testing.T) {
	// GIVEN
	backend := createBackend()

	// WHEN
	rec := request(backend, http.MethodGet, "/control/", "")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var result []ControlDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result, 1)
}

func TestUpdateControl_Software(t *testing.T) {
	// GIVEN
	backend := createBackend()

	// WHEN
	rec := request(backend, http.MethodPut, "/control"+testControlId+"/", `{"mode":"software","value":150}`)

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	ctrl := backend.Controls[0]
	assert.Equal(t, control.Software, ctrl.ControlMode())
	assert.Equal(t, 100.0, ctrl.SoftwareValue())
}

func TestUpdateControl_Default(t *testing.T) {
	// GIVEN
	backend := createBackend()
	backend.Controls[0].SetSoftware(50)

	// WHEN
	rec := request(backend, http.MethodPut, "/control"+testControlId+"/", `{"mode":"default"}`)

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, control.Default, backend.Controls[0].ControlMode())
}

func TestUpdateControl_MissingValue(t *testing.T) {
	// GIVEN
	backend := createBackend()

	// WHEN
	rec := request(backend, http.MethodPut, "/control"+testControlId+"/", `{"mode":"software"}`)

	// THEN
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, control.Undefined, backend.Controls[0].ControlMode())
}

func TestUpdateControl_UnknownMode(t *testing.T) {
	// GIVEN
	backend := createBackend()

	// WHEN
	rec := request(backend, http.MethodPut, "/control"+testControlId+"/", `{"mode":"turbo"}`)

	// THEN
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateControl_CurveWithUnknownSensor(t *testing.T) {
	// GIVEN
	backend := createBackend()

	// WHEN
	rec := request(backend, http.MethodPut, "/control"+testControlId+"/", `{"mode":"curve","curve":"0!0;30:20;70:100;/config/unknown,1"}`)

	// THEN
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	_, ok := backend.Controls[0].GetSoftwareCurve()
	assert.False(t, ok)
}

func TestUpdateControl_NotFound(t *testing.T) {
	// GIVEN
	backend := createBackend()

	// WHEN
	rec := request(backend, http.MethodPut, "/control/config/unknown/", `{"mode":"default"}`)

	// THEN
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
