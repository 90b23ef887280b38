package response

type SubPlanResponse struct {
	Name         string `json:"name"`
	Price        string `json:"price"`
	SubPrice     string `json:"subPrice"`
	Duration     int    `json:"duration"`
	DevicesCount int    `json:"devicesCount"`
}

type SubPlansResponse struct {
	Success bool              `json:"success"`
	Plans   []SubPlanResponse `json:"plans"`
}

type ServiceResponse struct {
	ID             string `json:"id"`
	SubPlanName    string `json:"subPlanName"`
	Status         string `json:"status"`
	ExpirationDate string `json:"expirationDate"`
}

type ServicesResponse struct {
	Success  bool              `json:"success"`
	Count    int               `json:"count"`
	Services []ServiceResponse `json:"services"`
}

type RenewResponse struct {
	Success        bool   `json:"success"`
	ExpirationDate string `json:"expirationDate"`
}
