package views

import (
	"terralot/internal/model"
	"terralot/pkg/geo"
)

// LotSummary is the lot detail header: the declared area next to the
// area measured from the perimeter, and the centroid the map centers on.
type LotSummary struct {
	Lot          model.Lot       `json:"lot"`
	MeasuredArea float64         `json:"measuredArea"` // hectares
	Centroid     *model.Location `json:"centroid,omitempty"`
}

// BuildLotSummary measures a lot's perimeter geometry.
func BuildLotSummary(lot model.Lot) LotSummary {
	points := make([]geo.Point, len(lot.Coordinates))
	for i, c := range lot.Coordinates {
		points[i] = geo.Point{Latitude: c.Latitude, Longitude: c.Longitude}
	}

	summary := LotSummary{
		Lot:          lot,
		MeasuredArea: geo.Hectares(geo.Area(points)),
	}
	if centroid, ok := geo.Centroid(points); ok {
		summary.Centroid = &model.Location{
			Latitude:  centroid.Latitude,
			Longitude: centroid.Longitude,
		}
	}
	return summary
}
