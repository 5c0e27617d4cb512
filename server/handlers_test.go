package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lifeline-sos/lifeline/auth"
	"github.com/lifeline-sos/lifeline/clipboard"
	"github.com/lifeline-sos/lifeline/contacts"
	"github.com/lifeline-sos/lifeline/kvstore"
	"github.com/lifeline-sos/lifeline/location"
	"github.com/lifeline-sos/lifeline/profile"
	"github.com/lifeline-sos/lifeline/sos"
	"github.com/stretchr/testify/assert"
)

const testAuthSecret = "test-secret"

type recordingDispatcher struct {
	targets []string
}

func (d *recordingDispatcher) Dispatch(target string) error {
	d.targets = append(d.targets, target)
	return nil
}

func newTestApp() (*App, *recordingDispatcher) {
	kv := kvstore.NewMemoryStore()
	sensor := location.NewReportedSensor()
	dispatcher := &recordingDispatcher{}

	contactStore := contacts.NewStore(kv)
	profileStore := profile.NewStore(kv)

	coordinator := sos.NewCoordinator(
		contactStore,
		profileStore,
		location.NewProbe(sensor, time.Second),
		dispatcher,
		&clipboard.Memory{},
	)

	return &App{
		Contacts:    contactStore,
		Profile:     profileStore,
		Sensor:      sensor,
		Coordinator: coordinator,
		authSecret:  testAuthSecret,
	}, dispatcher
}

func doRequest(t *testing.T, app *App, method, path, body string) *httptest.ResponseRecorder {
	token, err := auth.EncodeJWT(testAuthSecret, time.Hour)
	assert.Nil(t, err)

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Authorization", fmt.Sprintf("Bearer %v", token))

	recorder := httptest.NewRecorder()
	app.Router().ServeHTTP(recorder, request)

	return recorder
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app, _ := newTestApp()

	request := httptest.NewRequest("GET", "/contacts", nil)
	recorder := httptest.NewRecorder()
	app.Router().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestHealthCheckIsPublic(t *testing.T) {
	app, _ := newTestApp()

	request := httptest.NewRequest("GET", "/health", nil)
	recorder := httptest.NewRecorder()
	app.Router().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestAddAndListContacts(t *testing.T) {
	app, _ := newTestApp()

	recorder := doRequest(t, app, "POST", "/contacts", `{"name":"Ama","phone":"555-1234567"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)

	payload := ResponsePayload{}
	assert.Nil(t, json.NewDecoder(recorder.Body).Decode(&payload))
	assert.True(t, payload.Success)

	recorder = doRequest(t, app, "GET", "/contacts", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "555-1234567")
}

func TestAddContactValidation(t *testing.T) {
	app, _ := newTestApp()

	cases := []struct {
		description  string
		body         string
		expectedCode int
	}{
		{
			description:  "Should reject a missing phone",
			body:         `{"name":"Ama"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			description:  "Should reject an official emergency number",
			body:         `{"phone":"911"}`,
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			description:  "Should reject a number with fewer than 7 digits",
			body:         `{"phone":"123456"}`,
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			recorder := doRequest(t, app, "POST", "/contacts", c.body)
			assert.Equal(t, c.expectedCode, recorder.Code)
		})
	}

	assert.Empty(t, app.Contacts.List())
}

func TestRemoveContact(t *testing.T) {
	app, _ := newTestApp()

	contact, err := app.Contacts.Add("Ama", "555-1234567")
	assert.Nil(t, err)

	recorder := doRequest(t, app, "DELETE", fmt.Sprintf("/contacts/%v", contact.ID), "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, app.Contacts.List())
}

func TestProfileRoundTrip(t *testing.T) {
	app, _ := newTestApp()

	recorder := doRequest(t, app, "PUT", "/profile", `{"name":"Alex"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(t, app, "GET", "/profile", "")
	assert.Contains(t, recorder.Body.String(), "Alex")
}

func TestSendSosWithoutContacts(t *testing.T) {
	app, dispatcher := newTestApp()

	recorder := doRequest(t, app, "POST", "/sos", "")
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Empty(t, dispatcher.targets)
}

func TestSendSosWithReportedLocation(t *testing.T) {
	app, dispatcher := newTestApp()

	_, err := app.Contacts.Add("Ama", "555-1234567")
	assert.Nil(t, err)

	recorder := doRequest(t, app, "POST", "/location", `{"latitude":37.0,"longitude":-122.0}`)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(t, app, "POST", "/sos", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	assert.Len(t, dispatcher.targets, 1)
	assert.True(t, strings.HasPrefix(dispatcher.targets[0], "sms:"))

	recorder = doRequest(t, app, "GET", "/sos/report", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "37.000000,-122.000000")
}

func TestLastReportBeforeAnySend(t *testing.T) {
	app, _ := newTestApp()

	recorder := doRequest(t, app, "GET", "/sos/report", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestReportLocationValidation(t *testing.T) {
	app, _ := newTestApp()

	recorder := doRequest(t, app, "POST", "/location", `{"latitude":37.0}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
