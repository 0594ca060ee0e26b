package category

type CategoryResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// CreateCategoryDTO is the transport shape for creating an asset category.
type CreateCategoryDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
