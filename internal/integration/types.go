package integration

import "github.com/go-sod/quadtree/internal/geom"

type PointsRequest struct {
	Points []geom.Point `json:"points"`
}

type CollectResponse struct {
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
	Data     []struct {
		geom.Point
		Accepted bool `json:"accepted"`
	} `json:"data"`
}

type ContainsResponse struct {
	Data []struct {
		geom.Point
		Contains bool `json:"contains"`
	} `json:"data"`
}

type LocateResponse struct {
	Data []struct {
		geom.Point
		Found  bool       `json:"found"`
		Region *geom.Rect `json:"region"`
	} `json:"data"`
}

type StatsResponse struct {
	Bounds   geom.Rect `json:"bounds"`
	Points   int       `json:"points"`
	Nodes    int       `json:"nodes"`
	Depth    int       `json:"depth"`
	Capacity int       `json:"capacity"`
	Coverage *struct {
		Total   int     `json:"total"`
		Fed     int     `json:"fed"`
		Indexed int     `json:"indexed"`
		Percent float64 `json:"percent"`
	} `json:"coverage"`
}
