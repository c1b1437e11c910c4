package httpx

import (
	"net/http"

	"github.com/cloudbr34k84/travel-app-sub000/internal/service/travel"
)

func (r *Router) handleDestinations(w http.ResponseWriter, req *http.Request) {
	sess := sessionFromContext(req.Context())
	switch req.Method {
	case http.MethodGet:
		items, err := r.travel.ListDestinations(req.Context(), sess)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	case http.MethodPost:
		var payload travel.DestinationInput
		if err := decodeJSON(req, &payload); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		created, err := r.travel.CreateDestination(req.Context(), sess, payload)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleDestinationByID(w http.ResponseWriter, req *http.Request) {
	sess := sessionFromContext(req.Context())
	id := req.PathValue("id")
	switch req.Method {
	case http.MethodGet:
		item, err := r.travel.GetDestination(req.Context(), sess, id)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	case http.MethodPut:
		var payload travel.DestinationInput
		if err := decodeJSON(req, &payload); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		updated, err := r.travel.UpdateDestination(req.Context(), sess, id, payload)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := r.travel.DeleteDestination(req.Context(), sess, id); err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeMessage(w, http.StatusOK, "Destination deleted")
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleActivities(w http.ResponseWriter, req *http.Request) {
	sess := sessionFromContext(req.Context())
	switch req.Method {
	case http.MethodGet:
		items, err := r.travel.ListActivities(req.Context(), sess)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	case http.MethodPost:
		var payload travel.ActivityInput
		if err := decodeJSON(req, &payload); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		created, err := r.travel.CreateActivity(req.Context(), sess, payload)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleActivityByID(w http.ResponseWriter, req *http.Request) {
	sess := sessionFromContext(req.Context())
	id := req.PathValue("id")
	switch req.Method {
	case http.MethodGet:
		item, err := r.travel.GetActivity(req.Context(), sess, id)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	case http.MethodPut:
		var payload travel.ActivityInput
		if err := decodeJSON(req, &payload); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		updated, err := r.travel.UpdateActivity(req.Context(), sess, id, payload)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := r.travel.DeleteActivity(req.Context(), sess, id); err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeMessage(w, http.StatusOK, "Activity deleted")
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleAccommodations(w http.ResponseWriter, req *http.Request) {
	sess := sessionFromContext(req.Context())
	switch req.Method {
	case http.MethodGet:
		items, err := r.travel.ListAccommodations(req.Context(), sess)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	case http.MethodPost:
		var payload travel.AccommodationInput
		if err := decodeJSON(req, &payload); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		created, err := r.travel.CreateAccommodation(req.Context(), sess, payload)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleAccommodationByID(w http.ResponseWriter, req *http.Request) {
	sess := sessionFromContext(req.Context())
	id := req.PathValue("id")
	switch req.Method {
	case http.MethodGet:
		item, err := r.travel.GetAccommodation(req.Context(), sess, id)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	case http.MethodPut:
		var payload travel.AccommodationInput
		if err := decodeJSON(req, &payload); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		updated, err := r.travel.UpdateAccommodation(req.Context(), sess, id, payload)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := r.travel.DeleteAccommodation(req.Context(), sess, id); err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeMessage(w, http.StatusOK, "Accommodation deleted")
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleTrips(w http.ResponseWriter, req *http.Request) {
	sess := sessionFromContext(req.Context())
	switch req.Method {
	case http.MethodGet:
		trips, err := r.travel.ListTrips(req.Context(), sess)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, trips)
	case http.MethodPost:
		var payload travel.TripInput
		if err := decodeJSON(req, &payload); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		created, err := r.travel.CreateTrip(req.Context(), sess, payload)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleTripByID(w http.ResponseWriter, req *http.Request) {
	sess := sessionFromContext(req.Context())
	id := req.PathValue("id")
	switch req.Method {
	case http.MethodGet:
		detail, err := r.travel.GetTrip(req.Context(), sess, id)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, detail)
	case http.MethodPut:
		var payload travel.TripInput
		if err := decodeJSON(req, &payload); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		updated, err := r.travel.UpdateTrip(req.Context(), sess, id, payload)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := r.travel.DeleteTrip(req.Context(), sess, id); err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeMessage(w, http.StatusOK, "Trip deleted")
	default:
		r.methodNotAllowed(w)
	}
}

// handleTripItem attaches or detaches a catalog item of the given kind on a
// trip.
func (r *Router) handleTripItem(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		sess := sessionFromContext(req.Context())
		tripID := req.PathValue("id")
		itemID := req.PathValue("itemID")
		switch req.Method {
		case http.MethodPost:
			if err := r.travel.AttachItem(req.Context(), sess, tripID, kind, itemID); err != nil {
				r.writeServiceError(w, req, err)
				return
			}
			writeMessage(w, http.StatusCreated, "Added to trip")
		case http.MethodDelete:
			if err := r.travel.DetachItem(req.Context(), sess, tripID, kind, itemID); err != nil {
				r.writeServiceError(w, req, err)
				return
			}
			writeMessage(w, http.StatusOK, "Removed from trip")
		default:
			r.methodNotAllowed(w)
		}
	}
}

func (r *Router) handleDashboard(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	sess := sessionFromContext(req.Context())
	summary, err := r.travel.Dashboard(req.Context(), sess)
	if err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (r *Router) handleTripShare(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	sess := sessionFromContext(req.Context())
	link, err := r.share.CreateLink(req.Context(), sess, req.PathValue("id"))
	if err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

func (r *Router) handleShared(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	detail, err := r.share.Resolve(req.Context(), req.PathValue("token"))
	if err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
