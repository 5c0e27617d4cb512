package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lifeline-sos/lifeline/contacts"
	"github.com/lifeline-sos/lifeline/location"
	"github.com/lifeline-sos/lifeline/sos"
)

type addContactParams struct {
	Name  string `json:"name"`
	Phone string `json:"phone" validate:"required"`
}

type updateProfileParams struct {
	Name string `json:"name"`
}

type reportLocationParams struct {
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}

func (app *App) healthCheckHandler(rw http.ResponseWriter, r *http.Request) {
	json.NewEncoder(rw).Encode(ResponsePayload{Success: true})
}

func (app *App) listContactsHandler(rw http.ResponseWriter, r *http.Request) {
	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: app.Contacts.List()})
}

func (app *App) addContactHandler(rw http.ResponseWriter, r *http.Request) {
	data := addContactParams{}

	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	if err := validate.Struct(data); err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{"phone is required"}}, http.StatusBadRequest)
		return
	}

	contact, err := app.Contacts.Add(data.Name, data.Phone)
	if isValidationError(err) {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusUnprocessableEntity)
		return
	}

	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: contact})
}

func (app *App) removeContactHandler(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := app.Contacts.Remove(vars["id"]); err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true})
}

func (app *App) findProfileHandler(rw http.ResponseWriter, r *http.Request) {
	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: map[string]string{"name": app.Profile.Name()}})
}

func (app *App) updateProfileHandler(rw http.ResponseWriter, r *http.Request) {
	data := updateProfileParams{}

	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	if err := app.Profile.SetName(data.Name); err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true})
}

// reportLocationHandler records the position pushed by the client (e.g.
// browser geolocation); the next SOS send reads it through the sensor.
func (app *App) reportLocationHandler(rw http.ResponseWriter, r *http.Request) {
	data := reportLocationParams{}

	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	if err := validate.Struct(data); err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{"latitude & longitude are required"}}, http.StatusBadRequest)
		return
	}

	app.Sensor.Report(location.Coordinates{Latitude: *data.Latitude, Longitude: *data.Longitude})

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true})
}

func (app *App) sendSosHandler(rw http.ResponseWriter, r *http.Request) {
	status := app.Coordinator.Send(r.Context())

	if status == sos.STATUS_NO_CONTACTS {
		writeResponse(rw, ResponsePayload{Errors: []string{status}}, http.StatusUnprocessableEntity)
		return
	}

	report, _ := app.Coordinator.LastReport()
	json.NewEncoder(rw).Encode(ResponsePayload{
		Success: true,
		Data:    map[string]interface{}{"status": status, "report": report},
	})
}

func (app *App) lastReportHandler(rw http.ResponseWriter, r *http.Request) {
	report, ok := app.Coordinator.LastReport()
	if !ok {
		writeResponse(rw, ResponsePayload{Errors: []string{"no SOS message has been composed yet"}}, http.StatusNotFound)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: report})
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func isValidationError(err error) bool {
	return errors.Is(err, contacts.ErrEmptyPhone) ||
		errors.Is(err, contacts.ErrBlockedNumber) ||
		errors.Is(err, contacts.ErrTooShort)
}
