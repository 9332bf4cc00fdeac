package models

// RecommendationRequest is the request body for ranking carriers on a route.
type RecommendationRequest struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Priorities  []string `json:"priorities"`
	Fragility   string   `json:"fragility"`
}

// CarrierPick is a recommended carrier with its contact metadata.
type CarrierPick struct {
	Name          string `json:"name"`
	Domain        string `json:"domain,omitempty"`
	Hub           string `json:"hub,omitempty"`
	BhopalAddress string `json:"bhopalAddress,omitempty"`
	CareNumber    string `json:"careNumber,omitempty"`
}

// RecommendationResponse is the response for a carrier ranking.
type RecommendationResponse struct {
	Origin         string       `json:"origin"`
	Destination    string       `json:"destination"`
	TopChoice      CarrierPick  `json:"topChoice"`
	BalancedOption *CarrierPick `json:"balancedOption,omitempty"`
	ValuePick      CarrierPick  `json:"valuePick"`
}

// Carrier is the public view of a logistics company.
type Carrier struct {
	Name          string `json:"name"`
	Domain        string `json:"domain"`
	Hub           string `json:"hub"`
	BhopalAddress string `json:"bhopalAddress"`
	CareNumber    string `json:"careNumber"`
}

// CarrierListResponse is the response for listing carriers.
type CarrierListResponse struct {
	Items []Carrier `json:"items"`
}

// Route is an origin/destination pair with carrier data.
type Route struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// RouteListResponse is the response for listing routes with carrier data.
type RouteListResponse struct {
	Items []Route `json:"items"`
}
