package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"staffdesk.org/internal/apperr"
	"staffdesk.org/internal/employee"
)

type listEmployeesResponse struct {
	Items []employee.Employee `json:"items"`
	Count int                 `json:"count"`
	AsOf  time.Time           `json:"asOf"`
}

func (a *API) handleEmployeesCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listEmployees(w, r)
	case http.MethodPost:
		a.createEmployee(w, r)
	default:
		a.methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleEmployeeByEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	e, err := a.employees.FindByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (a *API) handleEmployeeResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/employees/")
	if id == "" || strings.Contains(id, "/") {
		a.writeFailure(w, r, apperr.New(apperr.KindNotFound, "no route for "+r.URL.Path))
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.getEmployee(w, r, id)
	case http.MethodPut:
		a.updateEmployee(w, r, id)
	case http.MethodDelete:
		a.deleteEmployee(w, r, id)
	default:
		a.methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) listEmployees(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 100)
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}

	items, err := a.employees.List(r.Context(), employee.Filter{
		Department: strings.TrimSpace(r.URL.Query().Get("department")),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listEmployeesResponse{
		Items: items,
		Count: len(items),
		AsOf:  time.Now().UTC(),
	})
}

func (a *API) createEmployee(w http.ResponseWriter, r *http.Request) {
	var in employee.Input
	if err := decodeJSON(w, r, &in); err != nil {
		a.writeFailure(w, r, err)
		return
	}

	created, err := a.employees.Create(r.Context(), in)
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/employees/"+created.ID)
	writeJSON(w, http.StatusCreated, created)
}

func (a *API) getEmployee(w http.ResponseWriter, r *http.Request, id string) {
	e, err := a.employees.Get(r.Context(), id)
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (a *API) updateEmployee(w http.ResponseWriter, r *http.Request, id string) {
	var in employee.Input
	if err := decodeJSON(w, r, &in); err != nil {
		a.writeFailure(w, r, err)
		return
	}

	updated, err := a.employees.Update(r.Context(), id, in)
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (a *API) deleteEmployee(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.employees.Delete(r.Context(), id); err != nil {
		a.writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apperr.New(apperr.KindInvalidInput, name+" must be a non-negative integer")
	}
	return v, nil
}
