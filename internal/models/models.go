package models

// Category is a product category as returned by the backend.
type Category struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	NameEN        string `json:"name_en,omitempty"`
	NameZH        string `json:"name_zh,omitempty"`
	Description   string `json:"description,omitempty"`
	DescriptionEN string `json:"description_en,omitempty"`
	IconURL       string `json:"icon_url,omitempty"`
	SortOrder     int    `json:"sort_order"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     Time   `json:"created_at"`
	UpdatedAt     Time   `json:"updated_at"`
}

// CategoryInput is the body of category create and update calls.
// Nil fields are omitted so updates stay partial.
type CategoryInput struct {
	Name          *string `json:"name,omitempty"`
	NameEN        *string `json:"name_en,omitempty"`
	NameZH        *string `json:"name_zh,omitempty"`
	Description   *string `json:"description,omitempty"`
	DescriptionEN *string `json:"description_en,omitempty"`
	IconURL       *string `json:"icon_url,omitempty"`
	SortOrder     *int    `json:"sort_order,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

// Product is a catalog product.
type Product struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	NameEN        string    `json:"name_en,omitempty"`
	NameZH        string    `json:"name_zh,omitempty"`
	Description   string    `json:"description,omitempty"`
	DescriptionEN string    `json:"description_en,omitempty"`
	DescriptionZH string    `json:"description_zh,omitempty"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"original_price,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	Images        string    `json:"images,omitempty"`
	SKU           string    `json:"sku,omitempty"`
	Stock         int       `json:"stock"`
	StockQuantity int       `json:"stock_quantity,omitempty"`
	SalesCount    int       `json:"sales_count,omitempty"`
	ViewCount     int       `json:"view_count,omitempty"`
	Rating        float64   `json:"rating,omitempty"`
	Tags          string    `json:"tags,omitempty"`
	IsFeatured    bool      `json:"is_featured"`
	IsActive      bool      `json:"is_active"`
	SortOrder     int       `json:"sort_order"`
	CategoryID    int       `json:"category_id"`
	Category      *Category `json:"category,omitempty"`
	CreatedAt     Time      `json:"created_at"`
	UpdatedAt     Time      `json:"updated_at"`
}

// DisplayName returns the English name for "en" when present, else the base name.
func (p Product) DisplayName(lang string) string {
	switch {
	case lang == "en" && p.NameEN != "":
		return p.NameEN
	case lang == "zh" && p.NameZH != "":
		return p.NameZH
	}
	return p.Name
}

// Quantity returns the stock figure, preferring stock_quantity when set.
func (p Product) Quantity() int {
	if p.StockQuantity > 0 {
		return p.StockQuantity
	}
	return p.Stock
}

// ProductInput is the body of product create and update calls.
type ProductInput struct {
	Name          *string  `json:"name,omitempty"`
	NameEN        *string  `json:"name_en,omitempty"`
	NameZH        *string  `json:"name_zh,omitempty"`
	Description   *string  `json:"description,omitempty"`
	DescriptionEN *string  `json:"description_en,omitempty"`
	DescriptionZH *string  `json:"description_zh,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty"`
	Images        *string  `json:"images,omitempty"`
	SKU           *string  `json:"sku,omitempty"`
	Stock         *int     `json:"stock,omitempty"`
	StockQuantity *int     `json:"stock_quantity,omitempty"`
	Tags          *string  `json:"tags,omitempty"`
	IsFeatured    *bool    `json:"is_featured,omitempty"`
	IsActive      *bool    `json:"is_active,omitempty"`
	SortOrder     *int     `json:"sort_order,omitempty"`
	CategoryID    *int     `json:"category_id,omitempty"`
}

// Pagination describes a page of a list response.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Pages int `json:"pages"`
}

// ProductPage is one page of products.
type ProductPage struct {
	Items      []Product  `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// FeaturedProduct is an admin featured-product record bound to a position.
type FeaturedProduct struct {
	ID        int      `json:"id"`
	ProductID int      `json:"product_id"`
	Position  int      `json:"position"`
	IsActive  bool     `json:"is_active"`
	CreatedAt Time     `json:"created_at"`
	UpdatedAt Time     `json:"updated_at"`
	Product   *Product `json:"product,omitempty"`
}

// FeaturedInput creates a featured-product record.
type FeaturedInput struct {
	ProductID int  `json:"product_id"`
	Position  int  `json:"position"`
	IsActive  bool `json:"is_active"`
}

// FeaturedUpdate partially updates a featured-product record.
type FeaturedUpdate struct {
	ProductID *int  `json:"product_id,omitempty"`
	Position  *int  `json:"position,omitempty"`
	IsActive  *bool `json:"is_active,omitempty"`
}

// PositionSlot is the occupant of a position in the admin positions map.
type PositionSlot struct {
	ID           int    `json:"id"`
	ProductID    int    `json:"product_id"`
	ProductName  string `json:"product_name"`
	ProductImage string `json:"product_image,omitempty"`
}

// FeaturedDisplay is one public storefront position; Product is nil when empty.
type FeaturedDisplay struct {
	Position int      `json:"position"`
	Product  *Product `json:"product"`
}

// BackgroundImage is a hero carousel slide record.
type BackgroundImage struct {
	ID           int    `json:"id"`
	Title        string `json:"title,omitempty"`
	TitleEN      string `json:"title_en,omitempty"`
	TitleZH      string `json:"title_zh,omitempty"`
	Subtitle     string `json:"subtitle,omitempty"`
	SubtitleEN   string `json:"subtitle_en,omitempty"`
	SubtitleZH   string `json:"subtitle_zh,omitempty"`
	ButtonText   string `json:"button_text,omitempty"`
	ButtonTextEN string `json:"button_text_en,omitempty"`
	ButtonTextZH string `json:"button_text_zh,omitempty"`
	ButtonLink   string `json:"button_link,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	SortOrder    int    `json:"sort_order"`
	IsActive     bool   `json:"is_active"`
}

// BackgroundImageInput is the body of background image create and update calls.
type BackgroundImageInput struct {
	Title        *string `json:"title,omitempty"`
	TitleEN      *string `json:"title_en,omitempty"`
	Subtitle     *string `json:"subtitle,omitempty"`
	SubtitleEN   *string `json:"subtitle_en,omitempty"`
	ButtonText   *string `json:"button_text,omitempty"`
	ButtonTextEN *string `json:"button_text_en,omitempty"`
	ButtonLink   *string `json:"button_link,omitempty"`
	ImageURL     *string `json:"image_url,omitempty"`
	SortOrder    *int    `json:"sort_order,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// Admin is an administrator account.
type Admin struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	FullName    string `json:"full_name,omitempty"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
	LastLogin   Time   `json:"last_login"`
	CreatedAt   Time   `json:"created_at"`
}

// AdminInput creates an administrator account.
type AdminInput struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email,omitempty"`
	FullName    string `json:"full_name,omitempty"`
	IsSuperuser bool   `json:"is_superuser"`
}

// Token is the login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// DashboardStats summarises the catalog for the admin dashboard.
type DashboardStats struct {
	CategoriesCount     int `json:"categories_count"`
	ProductsCount       int `json:"products_count"`
	ActiveProductsCount int `json:"active_products_count"`
	TotalStock          int `json:"total_stock"`
}

// FooterInfo is the storefront footer content.
type FooterInfo struct {
	ID                int    `json:"id"`
	AboutTitle        string `json:"about_title,omitempty"`
	AboutTitleEN      string `json:"about_title_en,omitempty"`
	AboutContent      string `json:"about_content,omitempty"`
	AboutContentEN    string `json:"about_content_en,omitempty"`
	ContactTitle      string `json:"contact_title,omitempty"`
	ContactTitleEN    string `json:"contact_title_en,omitempty"`
	ContactEmail      string `json:"contact_email,omitempty"`
	ContactPhone      string `json:"contact_phone,omitempty"`
	ContactAddress    string `json:"contact_address,omitempty"`
	ContactAddressEN  string `json:"contact_address_en,omitempty"`
	SocialTitle       string `json:"social_title,omitempty"`
	SocialTitleEN     string `json:"social_title_en,omitempty"`
	WechatURL         string `json:"wechat_url,omitempty"`
	WeiboURL          string `json:"weibo_url,omitempty"`
	GithubURL         string `json:"github_url,omitempty"`
	QuickLinksTitle   string `json:"quick_links_title,omitempty"`
	QuickLinksTitleEN string `json:"quick_links_title_en,omitempty"`
	CopyrightText     string `json:"copyright_text,omitempty"`
	CopyrightTextEN   string `json:"copyright_text_en,omitempty"`
	IsActive          bool   `json:"is_active"`
}

// AboutUs is the storefront about section.
type AboutUs struct {
	ID                 int    `json:"id"`
	Title              string `json:"title,omitempty"`
	TitleEN            string `json:"title_en,omitempty"`
	TitleZH            string `json:"title_zh,omitempty"`
	Content            string `json:"content,omitempty"`
	ContentEN          string `json:"content_en,omitempty"`
	ContentZH          string `json:"content_zh,omitempty"`
	BackgroundImageURL string `json:"background_image_url,omitempty"`
	TextColor          string `json:"text_color,omitempty"`
	BackgroundOverlay  string `json:"background_overlay,omitempty"`
	IsActive           bool   `json:"is_active"`
}
