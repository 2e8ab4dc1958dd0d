package handler

import "github.com/garimobility/admin-dashboard/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// --- Request / Response types ---

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
	Remember bool   `json:"remember" form:"remember"`
	From     string `json:"-"        form:"from"`
}

type loginResponse struct {
	User *domain.UserProfile `json:"user"`
}

type userUpdateRequest struct {
	Email       *string `json:"email,omitempty"        validate:"omitempty,email"`
	Username    *string `json:"username,omitempty"     validate:"omitempty,min=2,max=150"`
	FirstName   *string `json:"first_name,omitempty"   validate:"omitempty,max=150"`
	LastName    *string `json:"last_name,omitempty"    validate:"omitempty,max=150"`
	Phone       *string `json:"phone,omitempty"`
	Role        *string `json:"role,omitempty"         validate:"omitempty,oneof=admin staff customer"`
	IsActive    *bool   `json:"is_active,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
	Gender      *string `json:"gender,omitempty"       validate:"omitempty,oneof=male female other"`
}

// patch keeps only the fields the client sent.
func (r userUpdateRequest) patch() map[string]any {
	p := make(map[string]any)
	set := func(key string, v *string) {
		if v != nil {
			p[key] = *v
		}
	}
	set("email", r.Email)
	set("username", r.Username)
	set("first_name", r.FirstName)
	set("last_name", r.LastName)
	set("phone", r.Phone)
	set("role", r.Role)
	set("nationality", r.Nationality)
	set("gender", r.Gender)
	if r.IsActive != nil {
		p["is_active"] = *r.IsActive
	}
	return p
}

type toggleUserRequest struct {
	// IsActive is the status the client currently displays.
	IsActive *bool `json:"is_active" validate:"required"`
}

type usersResponse struct {
	Users    []domain.User `json:"users"`
	Total    int           `json:"total"`
	Active   int           `json:"active"`
	Inactive int           `json:"inactive"`
}

type bikeRequest struct {
	Name              string   `json:"name"               validate:"required,max=200"`
	Description       string   `json:"description"`
	Price             float64  `json:"price"              validate:"gte=0"`
	Category          string   `json:"category"           validate:"required"`
	StockQuantity     int      `json:"stock_quantity"     validate:"gte=0"`
	Specifications    string   `json:"specifications"`
	Features          []string `json:"features"`
	MaintenanceStatus string   `json:"maintenance_status" validate:"omitempty,oneof=good needs_service in_service"`
}

func (r bikeRequest) bike() *domain.Bike {
	return &domain.Bike{
		Name:              r.Name,
		Description:       r.Description,
		Price:             r.Price,
		Category:          r.Category,
		StockQuantity:     r.StockQuantity,
		Specifications:    r.Specifications,
		Features:          r.Features,
		MaintenanceStatus: r.MaintenanceStatus,
	}
}

type bikesResponse struct {
	Bikes       []domain.Bike `json:"bikes"`
	Total       int           `json:"total"`
	Available   int           `json:"available"`
	Maintenance int           `json:"maintenance"`
}

type categoryRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Description string  `json:"description"`
	IsActive    *bool   `json:"is_active"`
	BasePrice   float64 `json:"base_price"  validate:"gte=0"`
}

func (r categoryRequest) category() *domain.Category {
	c := &domain.Category{Name: r.Name, Description: r.Description, IsActive: true, BasePrice: r.BasePrice}
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
	return c
}

type loanStatusRequest struct {
	Status          string `json:"status"           validate:"required,oneof=pending under_review approved rejected"`
	RejectionReason string `json:"rejection_reason" validate:"max=500"`
}

type loansResponse struct {
	Applications []domain.LoanApplication `json:"applications"`
	Total        int                      `json:"total"`
}

type walletResponse struct {
	Transactions domain.Result[[]domain.Transaction] `json:"transactions"`
	Wallet       domain.Result[*domain.Wallet]       `json:"wallet"`
	Methods      []domain.MethodShare                `json:"payment_methods"`
	Degraded     bool                                `json:"degraded"`
}
