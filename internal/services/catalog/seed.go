package catalog

import (
	"khazina/internal/models"
	"khazina/internal/utils"
)

func seedProducts() []models.Product {
	return []models.Product{
		{
			ProductID:    utils.NewID("prod", 12),
			Type:         models.ProductTypeJewelry,
			Title:        "21K Twisted Bangle",
			Description:  "Classic twisted bangle, handmade in the Souq Waqif tradition.",
			PriceQAR:     4250,
			Karat:        21,
			WeightGrams:  15.2,
			MerchantName: "Al Sulaiman Jewellery",
			Category:     "bangles",
			Stock:        8,
			IsActive:     true,
		},
		{
			ProductID:    utils.NewID("prod", 12),
			Type:         models.ProductTypeJewelry,
			Title:        "22K Rope Chain Necklace",
			Description:  "45cm rope chain, high-polish finish.",
			PriceQAR:     6800,
			Karat:        22,
			WeightGrams:  22.5,
			MerchantName: "Gold Souq Doha",
			Category:     "necklaces",
			Stock:        5,
			IsActive:     true,
		},
		{
			ProductID:    utils.NewID("prod", 12),
			Type:         models.ProductTypeJewelry,
			Title:        "18K Diamond Stud Earrings",
			Description:  "0.5ct total, four-prong setting.",
			PriceQAR:     3900,
			Karat:        18,
			WeightGrams:  3.1,
			MerchantName: "Al Sulaiman Jewellery",
			Category:     "earrings",
			Stock:        12,
			IsActive:     true,
		},
		{
			ProductID:   utils.NewID("prod", 12),
			Type:        models.ProductTypeInvestmentBar,
			Title:       "10g Gold Bar 999.9",
			Description: "Cast bar with assay certificate.",
			PriceQAR:    2950,
			Karat:       24,
			WeightGrams: 10,
			Category:    "bars",
			Stock:       20,
			IsActive:    true,
		},
		{
			ProductID:   utils.NewID("prod", 12),
			Type:        models.ProductTypeInvestmentBar,
			Title:       "50g Gold Bar 999.9",
			Description: "Minted bar, serial numbered.",
			PriceQAR:    14500,
			Karat:       24,
			WeightGrams: 50,
			Category:    "bars",
			Stock:       6,
			IsActive:    true,
		},
		{
			ProductID:   utils.NewID("prod", 12),
			Type:        models.ProductTypeGift,
			Title:       "Gold Coin Gift Set",
			Description: "Two 8g coins in a presentation box.",
			PriceQAR:    5200,
			Karat:       24,
			WeightGrams: 16,
			Category:    "gifts",
			Stock:       10,
			IsActive:    true,
		},
		{
			ProductID:    utils.NewID("prod", 12),
			Type:         models.ProductTypeDesigner,
			Title:        "Dune Cuff",
			Description:  "Sculpted 18K cuff from the Dunes collection.",
			PriceQAR:     11200,
			Karat:        18,
			WeightGrams:  28,
			DesignerName: "Noora Al Thani",
			Brand:        "NAT Atelier",
			Category:     "designer",
			Stock:        2,
			IsActive:     true,
		},
	}
}

func seedMerchants() []models.Merchant {
	return []models.Merchant{
		{MerchantID: utils.NewID("merch", 12), Name: "Al Sulaiman Jewellery", IsActive: true},
		{MerchantID: utils.NewID("merch", 12), Name: "Gold Souq Doha", IsActive: true},
		{MerchantID: utils.NewID("merch", 12), Name: "Pearl Qatar Gold", IsActive: true},
	}
}

func seedDesigners() []models.Designer {
	return []models.Designer{
		{DesignerID: utils.NewID("dsgn", 12), Name: "Noora Al Thani", Brand: "NAT Atelier", IsActive: true},
		{DesignerID: utils.NewID("dsgn", 12), Name: "Hessa Jassim", Brand: "Hessa Fine Gold", IsActive: true},
	}
}
