package catalog

import (
	"github.com/lovenest/storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

func price(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func originalPrice(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

const imageBase = "https://images.unsplash.com/"

var seedProducts = []Product{
	{
		ID:            "1",
		Name:          "Classic Red Rose Bouquet",
		Description:   "A stunning arrangement of 24 premium red roses, hand-tied with satin ribbon. Perfect for expressing your deepest love.",
		Price:         price("49.99"),
		OriginalPrice: originalPrice("69.99"),
		Category:      enums.ProductCategoryGiftsForHer,
		Rating:        4.9,
		Reviews:       328,
		InStock:       true,
		Badge:         enums.ProductBadgeBestSeller,
		Image:         imageBase + "photo-1518621736915-f3b1c41bfd00?w=400&h=400&fit=crop",
	},
	{
		ID:            "2",
		Name:          "Luxury Teddy Bear",
		Description:   "An adorable 18-inch plush teddy bear with a soft velvet bow. A cuddly companion to treasure forever.",
		Price:         price("34.99"),
		OriginalPrice: originalPrice("44.99"),
		Category:      enums.ProductCategoryGiftsForHer,
		Rating:        4.8,
		Reviews:       215,
		InStock:       true,
		Badge:         enums.ProductBadgeValentineSpecial,
		Image:         imageBase + "photo-1558618666-fcd25c85cd64?w=400&h=400&fit=crop",
	},
	{
		ID:          "3",
		Name:        "Premium Chocolate Gift Box",
		Description: "Handcrafted Belgian chocolates in a luxurious heart-shaped box. 24 assorted flavors including dark, milk, and white chocolate.",
		Price:       price("59.99"),
		Category:    enums.ProductCategoryGiftsForHim,
		Rating:      4.7,
		Reviews:     189,
		InStock:     true,
		Image:       imageBase + "photo-1549007994-cb92caebd54b?w=400&h=400&fit=crop",
	},
	{
		ID:            "4",
		Name:          "Couple Rings Set",
		Description:   "Matching sterling silver couple rings with engraved hearts. Adjustable size fits most.",
		Price:         price("129.99"),
		OriginalPrice: originalPrice("179.99"),
		Category:      enums.ProductCategoryCoupleGifts,
		Rating:        4.9,
		Reviews:       156,
		InStock:       true,
		Badge:         enums.ProductBadgeLimitedEdition,
		Image:         imageBase + "photo-1515377905703-c4788e51af15?w=400&h=400&fit=crop",
	},
	{
		ID:          "5",
		Name:        "Romantic Photo Frame",
		Description: "Elegant wooden photo frame with 'Forever & Always' engraving. Holds two 4x6 photos.",
		Price:       price("29.99"),
		Category:    enums.ProductCategoryCoupleGifts,
		Rating:      4.6,
		Reviews:     98,
		InStock:     true,
		Image:       imageBase + "photo-1513519245088-0e12902e35a6?w=400&h=400&fit=crop",
	},
	{
		ID:            "6",
		Name:          "Heart Pendant Necklace",
		Description:   "18K gold-plated heart pendant with cubic zirconia stones. Comes with a delicate chain.",
		Price:         price("79.99"),
		OriginalPrice: originalPrice("99.99"),
		Category:      enums.ProductCategoryGiftsForHer,
		Rating:        4.8,
		Reviews:       267,
		InStock:       true,
		Badge:         enums.ProductBadgeTopRated,
		Image:         imageBase + "photo-1599643478518-a784e5dc4c8f?w=400&h=400&fit=crop",
	},
	{
		ID:          "7",
		Name:        "Valentine Greeting Card Set",
		Description: "Set of 6 handmade Valentine cards with romantic messages and beautiful illustrations.",
		Price:       price("14.99"),
		Category:    enums.ProductCategoryGiftsForHim,
		Rating:      4.5,
		Reviews:     72,
		InStock:     true,
		Image:       imageBase + "photo-1518199266791-5375a83190b7?w=400&h=400&fit=crop",
	},
	{
		ID:          "8",
		Name:        "Customized Love Mug",
		Description: "Ceramic mug with custom photo and message. Dishwasher safe. Perfect for morning coffee together.",
		Price:       price("24.99"),
		Category:    enums.ProductCategoryCoupleGifts,
		Rating:      4.7,
		Reviews:     134,
		InStock:     true,
		Image:       imageBase + "photo-1514228742587-6b1558fcca3d?w=400&h=400&fit=crop",
	},
	{
		ID:            "9",
		Name:          "Valentine Combo Pack",
		Description:   "Complete Valentine gift set: Rose bouquet, chocolates, teddy bear, and greeting card. Everything for the perfect surprise.",
		Price:         price("149.99"),
		OriginalPrice: originalPrice("199.99"),
		Category:      enums.ProductCategoryCoupleGifts,
		Rating:        5.0,
		Reviews:       89,
		InStock:       true,
		Badge:         enums.ProductBadgeBestValue,
		Image:         imageBase + "photo-1518621736915-f3b1c41bfd00?w=400&h=400&fit=crop",
	},
	{
		ID:          "10",
		Name:        "Scented Candle Set",
		Description: "Set of 3 romantic scented candles: Rose, Vanilla, and Jasmine. Burns for 40+ hours each.",
		Price:       price("39.99"),
		Category:    enums.ProductCategoryGiftsForHer,
		Rating:      4.6,
		Reviews:     108,
		InStock:     true,
		Image:       imageBase + "photo-1602607434774-42bb1cf8e5e1?w=400&h=400&fit=crop",
	},
	{
		ID:            "11",
		Name:          "Silk Tie & Cufflinks Set",
		Description:   "Premium silk tie with matching cufflinks in an elegant gift box. Perfect for the dapper gentleman.",
		Price:         price("54.99"),
		OriginalPrice: originalPrice("74.99"),
		Category:      enums.ProductCategoryGiftsForHim,
		Rating:        4.7,
		Reviews:       86,
		InStock:       true,
		Image:         imageBase + "photo-1594938298603-c8148c4dae35?w=400&h=400&fit=crop",
	},
	{
		ID:          "12",
		Name:        "Love Letter Writing Kit",
		Description: "Vintage-style stationery set with parchment paper, envelopes, wax seal, and calligraphy pen.",
		Price:       price("19.99"),
		Category:    enums.ProductCategoryGiftsForHim,
		Rating:      4.4,
		Reviews:     54,
		InStock:     true,
		Image:       imageBase + "photo-1579783902614-a3fb3927b6a5?w=400&h=400&fit=crop",
	},
}
