package servicedto

type BuyServiceInput struct {
	UserID     string
	PlanName   string
	AddressRef string
}

type RenewSubscriptionInput struct {
	UserID    string
	ServiceID string
	Months    int
}
