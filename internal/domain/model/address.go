package model

// Address is a structured postal location with optional geo-coordinates.
type Address struct {
	Street  string
	City    string
	State   string
	Zip     string
	Country string
	Lat     *float64
	Lon     *float64
}

// Valid reports whether all mandatory address fields are present.
func (a Address) Valid() bool {
	return a.Street != "" && a.City != "" && a.Zip != "" && a.Country != ""
}
