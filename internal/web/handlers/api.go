package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nar-resolver/internal/format"
	"github.com/nar-resolver/internal/nar"
	"github.com/nar-resolver/internal/resolver"
	"github.com/nar-resolver/internal/store"
)

// API handles the resolver endpoints.
type API struct {
	Resolver *resolver.Resolver
	Store    *store.Postgres
}

// ResolveRequest is the body of a resolve call.
type ResolveRequest struct {
	Address string `json:"address"`
}

// ResolveResponse reports the three-way resolution outcome. CivicAddress is
// filled when a record or location was resolved.
type ResolveResponse struct {
	Result       string `json:"result"`
	GUID         string `json:"guid,omitempty"`
	CivicAddress string `json:"civic_address,omitempty"`
}

// Resolve handles POST /api/resolve.
func (h *API) Resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Address == "" {
		http.Error(w, "address required", http.StatusBadRequest)
		return
	}

	resolution, err := h.Resolver.FindAddress(r.Context(), req.Address)
	if err != nil {
		http.Error(w, "resolution failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := ResolveResponse{Result: resolution.Kind.String(), GUID: resolution.GUID}
	if resolution.Kind != nar.NoMatch {
		if record, err := format.Base(r.Context(), h.Store, resolution.GUID); err == nil && record != nil {
			resp.CivicAddress = format.Civic(record, true)
		}
	}

	writeJSON(w, resp)
}

// AddressResponse carries both renderings of one register entry.
type AddressResponse struct {
	GUID           string `json:"guid"`
	CivicAddress   string `json:"civic_address"`
	MailingAddress string `json:"mailing_address"`
}

// Address handles GET /api/addresses/{guid}.
func (h *API) Address(w http.ResponseWriter, r *http.Request) {
	guid := mux.Vars(r)["guid"]

	record, err := format.Base(r.Context(), h.Store, guid)
	if err != nil {
		http.Error(w, "lookup failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if record == nil {
		http.Error(w, "unknown guid", http.StatusNotFound)
		return
	}

	oneLine := r.URL.Query().Get("one_line") == "true"
	writeJSON(w, AddressResponse{
		GUID:           guid,
		CivicAddress:   format.Civic(record, oneLine),
		MailingAddress: format.Mailing(record, oneLine),
	})
}

// ReverseResponse is the nearest register entry to a coordinate.
type ReverseResponse struct {
	GUID     string  `json:"guid"`
	Distance float64 `json:"distance_meters"`
}

// Reverse handles GET /api/reverse?lat=..&lon=..
func (h *API) Reverse(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if errLat != nil || errLon != nil {
		http.Error(w, "lat and lon required", http.StatusBadRequest)
		return
	}

	guid, distance, err := h.Store.ReverseGeocode(r.Context(), lat, lon)
	if err != nil {
		http.Error(w, "reverse lookup failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if guid == "" {
		http.Error(w, "register is empty", http.StatusNotFound)
		return
	}

	writeJSON(w, ReverseResponse{GUID: guid, Distance: distance})
}

// Health handles GET /api/health.
func (h *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encoding failed", http.StatusInternalServerError)
	}
}
