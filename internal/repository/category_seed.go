package repository

import (
	"context"

	"esep-backend/internal/domain"
)

// SeedDefaults inserts the seven self-employment programs offered on the
// portal. Fees are in rupees.
func (r CategoryRepository) SeedDefaults(ctx context.Context) error {
	defaults := []domain.Category{
		{
			ID:          "pennyekart-free",
			Name:        "Pennyekart Free Registration",
			Description: "Totally free registration with basic level access. Free delivery between 2pm to 6pm.",
			ActualFee:   0,
			OfferFee:    0,
			Features:    []string{"Free registration", "Free delivery (2pm-6pm)", "Basic level access", "E-commerce platform access"},
		},
		{
			ID:          "pennyekart-paid",
			Name:        "Pennyekart Paid Registration",
			Description: "Premium registration with extended delivery hours and enhanced features.",
			ActualFee:   500,
			OfferFee:    299,
			Features:    []string{"Any time delivery (8am-7pm)", "Premium features", "Priority support", "Extended service hours"},
		},
		{
			ID:          "farmelife",
			Name:        "Farmelife",
			Description: "Connected with dairy farm, poultry farm and agricultural businesses.",
			ActualFee:   800,
			OfferFee:    599,
			Features:    []string{"Dairy farm connections", "Poultry farm network", "Agricultural business support", "Farm-to-market solutions"},
		},
		{
			ID:          "organelife",
			Name:        "Organelife",
			Description: "Connected with vegetable and house gardening, especially terrace vegetable farming.",
			ActualFee:   600,
			OfferFee:    399,
			Features:    []string{"Organic farming support", "Terrace gardening solutions", "Vegetable farming network", "Sustainable agriculture"},
		},
		{
			ID:          "foodelif",
			Name:        "Foodelif",
			Description: "Connected with food processing business and culinary services.",
			ActualFee:   700,
			OfferFee:    499,
			Features:    []string{"Food processing business", "Culinary services", "Recipe sharing platform", "Food quality certification"},
		},
		{
			ID:          "entrelife",
			Name:        "Entrelife",
			Description: "Connected with skilled projects like stitching, art works, and various home services.",
			ActualFee:   650,
			OfferFee:    449,
			Features:    []string{"Skilled project management", "Stitching and tailoring", "Art and craft services", "Home service network"},
		},
		{
			ID:          "job-card",
			Name:        "Job Card",
			Description: "Special offer card with access to all categories, special discounts, and investment opportunities.",
			ActualFee:   2000,
			OfferFee:    999,
			Features:    []string{"Access to all categories", "Special fee cut packages", "Exclusive offers and discounts", "Investment card benefits", "Convertible to any category", "Points and profit system"},
		},
	}

	for _, c := range defaults {
		_, err := r.DB.Pool.Exec(ctx, `
			INSERT INTO categories (id, name, description, actual_fee, offer_fee, image, features, is_active, created_at)
			VALUES ($1, $2, $3, $4, $5, '', $6, TRUE, now())
			ON CONFLICT (id) DO NOTHING
		`, c.ID, c.Name, c.Description, c.ActualFee, c.OfferFee, c.Features)
		if err != nil {
			return err
		}
	}
	return nil
}
