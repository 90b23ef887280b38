package request

type BuyServiceRequest struct {
	PlanName   string `json:"planName"`
	AddressRef string `json:"addressRef"`
}

type RenewServiceRequest struct {
	Months int `json:"months"`
}
