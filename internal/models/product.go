package models

// Category is one of the fixed catalog tags.
type Category string

// Review is a customer review attached to a product.
type Review struct {
	ID       string `json:"id" yaml:"id"`
	UserName string `json:"userName" yaml:"userName"`
	Rating   int    `json:"rating" yaml:"rating"`
	Comment  string `json:"comment" yaml:"comment"`
	Date     string `json:"date" yaml:"date"`
}

// Product represents a product in the store. Products are generated once per
// process and never mutated afterwards.
type Product struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Brand       string   `json:"brand" yaml:"brand"`
	Category    Category `json:"category" yaml:"category"`
	Price       float64  `json:"price" yaml:"price"`
	Description string   `json:"description" yaml:"description"`
	Images      []string `json:"images" yaml:"images"`
	Sizes       []string `json:"sizes" yaml:"sizes"`
	Colors      []string `json:"colors" yaml:"colors"`
	Rating      float64  `json:"rating" yaml:"rating"`
	Stock       int      `json:"stock" yaml:"stock"`
	Reviews     []Review `json:"reviews" yaml:"reviews"`
	IsNew       bool     `json:"isNew,omitempty" yaml:"isNew,omitempty"`
	IsFeatured  bool     `json:"isFeatured,omitempty" yaml:"isFeatured,omitempty"`
}
