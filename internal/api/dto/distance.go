package dto

type CoordinatePayload struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type DistanceResponse struct {
	From   CoordinatePayload `json:"from"`
	To     CoordinatePayload `json:"to"`
	Meters int               `json:"meters"`
}

type MetricsResponse struct {
	CacheSize      int                 `json:"cache_size"`
	CacheMisses    int64               `json:"cache_misses"`
	ExecutionCount int64               `json:"execution_count"`
	MaxExecutionMs int64               `json:"max_execution_ms"`
	AvgExecutionMs int64               `json:"avg_execution_ms"`
	TopCoordinates []CoordinatePayload `json:"top_coordinates"`
}
