package dto

// DashboardResponse headline counts.
type DashboardResponse struct {
	Students int64 `json:"students"`
	Teachers int64 `json:"teachers"`
	Classes  int64 `json:"classes"`
	Meetings int64 `json:"meetings"`
}
