package handlers

import (
	"log"
	"net/http"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/ports"
)

// AddressHandler exposes the raw destination list from the data source.
type AddressHandler struct {
	Source ports.AddressSource
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	records, err := h.Source.ListAddresses(r.Context())
	if err != nil {
		log.Printf("list addresses failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListAddressesResponse{
		Addresses: make([]dto.AddressResponse, 0, len(records)),
	}
	for _, rec := range records {
		res.Addresses = append(res.Addresses, dto.AddressResponse{
			Company:      rec.Company,
			Address:      rec.Address,
			Weight:       rec.Weight,
			DeliveryDate: rec.DeliveryDate,
			Manager:      rec.Manager,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
