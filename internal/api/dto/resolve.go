package dto

type CoordinateResponse struct {
	RA     float64 `json:"ra"`
	Dec    float64 `json:"dec"`
	RAHMS  string  `json:"ra_hms"`
	DecDMS string  `json:"dec_dms"`
}

type ResolveResponse struct {
	Name          string             `json:"name"`
	CanonicalName string             `json:"canonical_name,omitempty"`
	Coordinate    CoordinateResponse `json:"coordinate"`
	Cached        bool               `json:"cached"`
}

type BatchResolveRequest struct {
	Names []string `json:"names"`
}

type BatchResolveItem struct {
	Name       string              `json:"name"`
	Coordinate *CoordinateResponse `json:"coordinate,omitempty"`
	Cached     bool                `json:"cached,omitempty"`
	Error      string              `json:"error,omitempty"`
}

type BatchResolveResponse struct {
	Results []BatchResolveItem `json:"results"`
}

type TargetResponse struct {
	Name       string              `json:"name"`
	Note       string              `json:"note,omitempty"`
	Coordinate *CoordinateResponse `json:"coordinate,omitempty"`
	Error      string              `json:"error,omitempty"`
}

type ListTargetsResponse struct {
	Targets []TargetResponse `json:"targets"`
}
