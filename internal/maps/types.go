package maps

type LookupRequest struct {
	Query string `form:"q" binding:"required,min=3"`
}

// ReverseRequest is a GPS fix. Pointers tell a missing coordinate from 0.
type ReverseRequest struct {
	Lat *float64 `form:"lat" binding:"required,min=-90,max=90"`
	Lon *float64 `form:"lon" binding:"required,min=-180,max=180"`
}

// AddressSuggestion is a US address split into the fields a job form fills.
type AddressSuggestion struct {
	Label  string `json:"label"`
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	ZIP    string `json:"zip"`
	County string `json:"county,omitempty"`
	Lat    string `json:"lat"`
	Lon    string `json:"lon"`
}

// nominatimPlace is the subset of a Nominatim search or reverse hit we read.
type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Error       string `json:"error"`
	Address     struct {
		HouseNumber  string `json:"house_number"`
		Road         string `json:"road"`
		Hamlet       string `json:"hamlet"`
		Village      string `json:"village"`
		Town         string `json:"town"`
		City         string `json:"city"`
		Municipality string `json:"municipality"`
		County       string `json:"county"`
		State        string `json:"state"`
		StateCode    string `json:"ISO3166-2-lvl4"`
		Postcode     string `json:"postcode"`
	} `json:"address"`
}
