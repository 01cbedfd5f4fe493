package dto

type AddressResponse struct {
	Company      string  `json:"company"`
	Address      string  `json:"address"`
	Weight       float64 `json:"weight"`
	DeliveryDate string  `json:"delivery_date,omitempty"`
	Manager      string  `json:"manager,omitempty"`
}

type ListAddressesResponse struct {
	Addresses []AddressResponse `json:"addresses"`
}
