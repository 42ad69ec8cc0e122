package domain

// WBSearchResponse represents the response from the catalog search API
type WBSearchResponse struct {
	Products []WBProduct `json:"products"`
	Total    int         `json:"total,omitempty"`
}

// WBProduct represents a single product in a catalog search response
type WBProduct struct {
	ID        uint64   `json:"id"`
	Name      string   `json:"name"`
	Brand     string   `json:"brand"`
	Rating    *float64 `json:"rating,omitempty"`
	Feedbacks *int     `json:"feedbacks,omitempty"`
	Pics      int      `json:"pics,omitempty"`
	Sizes     []WBSize `json:"sizes"`
}

// WBSize is one size variant of a product; prices live here
type WBSize struct {
	Name  string   `json:"name,omitempty"`
	Price *WBPrice `json:"price,omitempty"`
}

// WBPrice holds prices in kopecks
type WBPrice struct {
	Basic   *int64 `json:"basic,omitempty"`
	Product *int64 `json:"product,omitempty"`
}

// ImageHostList is the payload of the media basket state endpoint
type ImageHostList struct {
	Projects struct {
		MediaBasket struct {
			Hosts map[string]ImageHostRange `json:"hosts"`
		} `json:"mediabasket"`
	} `json:"projects"`
}

// ImageHostRange is the inclusive volume range served by one image host
type ImageHostRange struct {
	MinVol int64 `json:"min_vol"`
	MaxVol int64 `json:"max_vol"`
}
