package request

type ResolveRequest struct {
	Confirmed *bool `json:"confirmed"`
}
