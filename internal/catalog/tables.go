package catalog

import "storefront/internal/models"

// Categories lists the twenty catalog tags in display order.
var Categories = []models.Category{
	"Suits & Blazers", "Panjabi & Pajama", "Premium Shirts", "T-Shirts & Polos", "Trousers & Chinos",
	"Luxury Watches", "Leather Shoes", "Boots", "Ethnic Wear", "Western Coats",
	"Belts", "Bags & Backpacks", "Perfumes", "Sunglasses",
	"Accessories", "Activewear", "Loungewear", "Winter Essentials", "Grooming",
	"Gift Sets",
}

var categoryBrands = map[models.Category][]string{
	"Suits & Blazers":   {"Zurhem", "Fit Elegance", "Blucheez", "Raymond"},
	"Panjabi & Pajama":  {"Aarong", "Yellow", "Lubnan", "Illiyeen"},
	"Premium Shirts":    {"Blucheez", "Artisan", "Richman", "Cats Eye"},
	"T-Shirts & Polos":  {"Blucheez", "Noir", "Bongo", "Grameen Uniqlo"},
	"Trousers & Chinos": {"Blucheez", "Artisan", "Fit Elegance", "Richman"},
	"Luxury Watches":    {"Rolex", "Omega", "Hublot", "Montblanc", "Patek Philippe", "Audemars Piguet"},
	"Leather Shoes":     {"Apex Venturini", "Lotto", "Bata", "Land"},
	"Boots":             {"Apex Venturini", "Timberland", "Zeil's"},
	"Ethnic Wear":       {"Aarong", "Yellow", "Lubnan", "Illiyeen"},
	"Western Coats":     {"Zurhem", "Fit Elegance", "Raymond"},
	"Belts":             {"Apex", "Montblanc", "Gucci"},
	"Bags & Backpacks":  {"Samsonite", "Montblanc", "Gucci"},
	"Perfumes":          {"Dior", "Chanel", "Armani", "Hermès", "Tom Ford"},
	"Sunglasses":        {"Ray-Ban", "Oakley", "Gucci", "Prada"},
	"Accessories":       {"Montblanc", "Montegrappa", "Parker"},
	"Activewear":        {"Nike", "Adidas", "Puma"},
	"Loungewear":        {"H&M", "Zara"},
	"Winter Essentials": {"Zurhem", "North Face"},
	"Grooming":          {"Philips", "Braun", "Gillette"},
	"Gift Sets":         {"Montblanc", "The Body Shop"},
}

const (
	defaultBrand     = "VogueMen Boutique"
	fallbackImageKey = models.Category("Premium Shirts")
)

var imagePools = map[models.Category][]string{
	"Suits & Blazers": {
		"https://images.unsplash.com/photo-1594932224010-3a13df2c6f32?q=80&w=1000",
		"https://images.unsplash.com/photo-1507679799987-c73779587ccf?q=80&w=1000",
		"https://images.unsplash.com/photo-1593032465175-481ac7f401a0?q=80&w=1000",
	},
	"Panjabi & Pajama": {
		"https://images.unsplash.com/photo-1621335829175-95f437384d7c?q=80&w=1000",
		"https://images.unsplash.com/photo-1627384113972-f4c0392f5aa9?q=80&w=1000",
		"https://images.unsplash.com/photo-1582533561751-ef6f6ab93a2e?q=80&w=1000",
	},
	"Ethnic Wear": {
		"https://images.unsplash.com/photo-1601002047864-770ce8950bb7?q=80&w=1000",
		"https://images.unsplash.com/photo-1618214309133-1ec40552d7ee?q=80&w=1000",
		"https://images.unsplash.com/photo-1598514983318-291419157db2?q=80&w=1000",
	},
	"Premium Shirts": {
		"https://images.unsplash.com/photo-1620012253295-c15cc3e65df4?q=80&w=1000",
		"https://images.unsplash.com/photo-1596755094514-f87034a7a98d?q=80&w=1000",
		"https://images.unsplash.com/photo-1598033129183-c4f50c7176c8?q=80&w=1000",
	},
	"T-Shirts & Polos": {
		"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?q=80&w=1000",
		"https://images.unsplash.com/photo-1583743814966-8936f5b7be1a?q=80&w=1000",
		"https://images.unsplash.com/photo-1576566588028-4147f3842f27?q=80&w=1000",
	},
	"Trousers & Chinos": {
		"https://images.unsplash.com/photo-1624371414361-e6e8ea01c10d?q=80&w=1000",
		"https://images.unsplash.com/photo-1542272604-787c3835535d?q=80&w=1000",
	},
	"Luxury Watches": {
		"https://images.unsplash.com/photo-1524592094714-0f0654e20314?q=80&w=1000",
		"https://images.unsplash.com/photo-1522335789203-aabd1fc54bc9?q=80&w=1000",
		"https://images.unsplash.com/photo-1508685096489-7aac291ba597?q=80&w=1000",
	},
	"Leather Shoes": {
		"https://images.unsplash.com/photo-1531310197839-ccf54634509e?q=80&w=1000",
		"https://images.unsplash.com/photo-1449247704656-13621df5da3d?q=80&w=1000",
		"https://images.unsplash.com/photo-1614252235316-8c857d38b5f4?q=80&w=1000",
	},
	"Boots": {
		"https://images.unsplash.com/photo-1638247025967-b4e38f787b76?q=80&w=1000",
		"https://images.unsplash.com/photo-1520639889313-7272175b1c39?q=80&w=1000",
	},
	"Western Coats": {
		"https://images.unsplash.com/photo-1591047139829-d91aecb6caea?q=80&w=1000",
		"https://images.unsplash.com/photo-1544923246-77307dd654ca?q=80&w=1000",
	},
	"Bags & Backpacks": {
		"https://images.unsplash.com/photo-1548036328-c9fa89d128fa?q=80&w=1000",
		"https://images.unsplash.com/photo-1553062407-98eeb64c6a62?q=80&w=1000",
	},
	"Perfumes": {
		"https://images.unsplash.com/photo-1541643600914-78b084683601?q=80&w=1000",
		"https://images.unsplash.com/photo-1592945403244-b3fbafd7f539?q=80&w=1000",
	},
	"Sunglasses": {
		"https://images.unsplash.com/photo-1511499767390-a73359580bc8?q=80&w=1000",
		"https://images.unsplash.com/photo-1572635196237-14b3f281503f?q=80&w=1000",
	},
	"Accessories": {
		"https://images.unsplash.com/photo-1584917865442-de89df76afd3?q=80&w=1000",
		"https://images.unsplash.com/photo-1614613535308-eb5fbd3d2c17?q=80&w=1000",
	},
}

var (
	materials = []string{"Egyptian Cotton", "Italian Silk", "Raw Selvedge", "Premium Linen", "Merino Wool", "Full Grain Leather", "Viscose Silk"}
	styles    = []string{"Signature", "Heritage", "Atelier", "Artisan", "Contemporary", "Imperial", "Monarch"}
	colors    = []string{"Midnight Black", "Ivory White", "Royal Navy", "Graphite Grey"}
	reviewers = []string{"Afif Rahman", "Imran Hossain", "Zaid Ahmed"}

	apparelSizes   = []string{"S", "M", "L", "XL", "XXL"}
	accessorySizes = []string{"Standard", "XL", "S"}
)

// priceRange is an inclusive-exclusive [min, max) draw range in Taka.
type priceRange struct {
	min, max float64
}

var defaultPriceRange = priceRange{5000, 20000}

var priceRanges = map[models.Category]priceRange{
	"Suits & Blazers":   {45000, 185000},
	"Panjabi & Pajama":  {6500, 35000},
	"Premium Shirts":    {3200, 12500},
	"T-Shirts & Polos":  {1800, 6500},
	"Trousers & Chinos": {4500, 15500},
	"Luxury Watches":    {85000, 4500000},
	"Leather Shoes":     {8500, 45000},
	"Boots":             {12500, 65000},
	"Ethnic Wear":       {12500, 85000},
	"Western Coats":     {15500, 125000},
	"Belts":             {3500, 18500},
	"Bags & Backpacks":  {15500, 125000},
	"Perfumes":          {8500, 45000},
	"Sunglasses":        {12500, 85000},
	"Accessories":       {2500, 15500},
	"Activewear":        {4500, 18500},
	"Loungewear":        {3500, 12500},
	"Winter Essentials": {8500, 45000},
	"Grooming":          {2500, 15500},
	"Gift Sets":         {15500, 85000},
}

// IsCategory reports whether c is one of the fixed catalog tags.
func IsCategory(c models.Category) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}
