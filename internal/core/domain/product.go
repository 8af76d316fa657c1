package domain

// Strain classifies a product.
type Strain string

const (
	StrainSativa Strain = "Sativa"
	StrainIndica Strain = "Indica"
	StrainHybrid Strain = "Hybrid"
)

// Valid reports whether s is one of the known strains.
func (s Strain) Valid() bool {
	switch s {
	case StrainSativa, StrainIndica, StrainHybrid:
		return true
	}
	return false
}

// Product is a catalog listing owned by exactly one seller.
type Product struct {
	ID          string  `json:"id" bson:"_id"`
	Name        string  `json:"name" bson:"name"`
	Strain      Strain  `json:"strain" bson:"strain"`
	Price       float64 `json:"price" bson:"price"`
	SellerID    string  `json:"seller_id" bson:"seller_id"`
	Description string  `json:"description" bson:"description"`
	ImageURL    string  `json:"image_url" bson:"image_url"`
}

// NewProduct carries the seller-supplied fields of a listing. Id, owner and
// image are assigned by the marketplace.
type NewProduct struct {
	Name        string
	Strain      Strain
	Price       float64
	Description string
}
