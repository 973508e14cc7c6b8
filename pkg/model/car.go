package model

const (
	CarTypeSUV     = "suv"
	CarTypeEconomy = "economy"
	CarTypeLuxury  = "luxury"
)

var CarTypes = []string{CarTypeSUV, CarTypeEconomy, CarTypeLuxury}

func IsCarType(t string) bool {
	for _, ct := range CarTypes {
		if ct == t {
			return true
		}
	}
	return false
}

type Car struct {
	ID    string  `json:"_id,omitempty" bson:"_id,omitempty"`
	Model string  `json:"model" bson:"model"`
	Make  string  `json:"make" bson:"make"`
	Price float64 `json:"price" bson:"price"`
	Type  string  `json:"type" bson:"type"`
	Image string  `json:"image" bson:"image"`
}
