package models

// GeoPoint is a GeoJSON point. Coordinates are stored [lng, lat], the
// MongoDB convention, and flipped to lat/lng at the API boundary.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint builds a point from a lat/lng pair.
func NewGeoPoint(lat, lng float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Lat returns the latitude, or 0 if the point is malformed.
func (p *GeoPoint) Lat() float64 {
	if p == nil || len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

// Lng returns the longitude, or 0 if the point is malformed.
func (p *GeoPoint) Lng() float64 {
	if p == nil || len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[0]
}

// Valid reports whether the point carries a usable coordinate pair.
func (p *GeoPoint) Valid() bool {
	return p != nil && len(p.Coordinates) == 2
}
