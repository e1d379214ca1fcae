package entities

// EstimateRequest carries the user's selections
type EstimateRequest struct {
	ServiceCode string            `json:"service"`
	ZIP         string            `json:"zip"`
	Insurance   InsuranceCategory `json:"insurance"`
}

// EstimateResult is a derived, non-persisted price range with resolved labels
type EstimateResult struct {
	ServiceCode    string            `json:"serviceCode"`
	ServiceName    string            `json:"serviceName"`
	ZIP            string            `json:"zip"`
	Region         Region            `json:"region"`
	RegionLabel    string            `json:"regionLabel"`
	Insurance      InsuranceCategory `json:"insurance"`
	InsuranceLabel string            `json:"insuranceLabel"`
	Low            int64             `json:"low"`
	High           int64             `json:"high"`
	TipKey         string            `json:"tipKey"`
}

// Quote is an estimate together with the tips for its service
type Quote struct {
	EstimateResult
	Tips []string `json:"tips"`
}
