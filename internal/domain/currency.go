package domain

// Currency is an ISO-style currency code. Only the two currencies the
// dashboard tracks are supported.
type Currency string

const (
	IDR Currency = "IDR"
	USD Currency = "USD"
)

// Valid reports whether the currency is one of the supported codes.
func (c Currency) Valid() bool {
	return c == IDR || c == USD
}

// AssetCategory classifies a holding. Categories map 1:1 to the rows of the
// allocation breakdown.
type AssetCategory string

const (
	CategoryIndoStock   AssetCategory = "Indo Stock"
	CategoryUSStock     AssetCategory = "US Stock"
	CategoryCrypto      AssetCategory = "Crypto"
	CategorySavings     AssetCategory = "Savings"
	CategoryRDN         AssetCategory = "RDN"
	CategoryObligasi    AssetCategory = "Obligasi"
	CategoryReksadanaPU AssetCategory = "Reksadana Pasar Uang"
	CategorySBNRetail   AssetCategory = "SBN Retail"
	CategoryObligasiFR  AssetCategory = "Obligasi FR"
)

// AssetCategories lists every known category.
var AssetCategories = []AssetCategory{
	CategoryIndoStock,
	CategoryUSStock,
	CategoryCrypto,
	CategorySavings,
	CategoryRDN,
	CategoryObligasi,
	CategoryReksadanaPU,
	CategorySBNRetail,
	CategoryObligasiFR,
}

// Valid reports whether the category is one of the known categories.
func (c AssetCategory) Valid() bool {
	for _, known := range AssetCategories {
		if c == known {
			return true
		}
	}
	return false
}

// DefaultCurrency returns the currency new assets of this category default to.
func (c AssetCategory) DefaultCurrency() Currency {
	switch c {
	case CategoryUSStock, CategoryCrypto:
		return USD
	default:
		return IDR
	}
}

// LotSize returns the number of base units per displayed trading unit.
// Indonesian stocks trade in lots of 100 shares; quantities are stored in
// base units and converted at the UI boundary only.
func (c AssetCategory) LotSize() int {
	if c == CategoryIndoStock {
		return 100
	}
	return 1
}
